package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: tx}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) FindByIDWithCourses(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).
		Preload("Courses", orderCourses).
		Where("id = ?", id).
		First(&category).Error
	return &category, err
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&model.Category{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).Order("featured_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) ListWithCourses(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Preload("Courses", orderCourses).
		Order("featured_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
}

func (r *CategoryRepository) CountCourses(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// DetachCourses clears the category reference of every course in the category and
// appends those courses, in their current order, to the uncategorized group.
// Run it inside a transaction.
func (r *CategoryRepository) DetachCourses(ctx context.Context, id string) (int64, error) {
	var ids []string
	err := orderCourses(r.DB.WithContext(ctx).Model(&model.Course{})).
		Where("category_id = ?", id).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}

	next, err := NextOrder(ctx, r.DB, "courses", CoursesInCategory(nil))
	if err != nil {
		return 0, err
	}

	for i, courseID := range ids {
		err := r.DB.WithContext(ctx).Model(&model.Course{}).
			Where("id = ?", courseID).
			Updates(map[string]interface{}{"category_id": nil, "order": next + i}).Error
		if err != nil {
			return int64(i), err
		}
	}
	return int64(len(ids)), nil
}

func (r *CategoryRepository) NextFeaturedOrder(ctx context.Context) (int, error) {
	return nextValue(ctx, r.DB, "categories", "featured_order", nil)
}

func (r *CategoryRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "categories", "featured_order", updates)
}

func orderCourses(db *gorm.DB) *gorm.DB {
	return db.Order("`order` ASC, created_at DESC")
}
