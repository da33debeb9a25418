package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseFilter struct {
	CategoryID string
	Level      string
	Featured   *bool
	Search     string
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) WithTx(tx *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: tx}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&course).Error
	return &course, err
}

// FindByIDWithContent loads the course with its ordered modules and their submodules.
func (r *CourseRepository) FindByIDWithContent(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Modules", orderBySiblingOrder).
		Preload("Modules.SubModules", orderBySiblingOrder).
		Where("id = ?", id).
		First(&course).Error
	return &course, err
}

func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) applyFilter(query *gorm.DB, f CourseFilter) *gorm.DB {
	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	return query
}

func (r *CourseRepository) List(ctx context.Context, f CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.applyFilter(r.DB.WithContext(ctx).Model(&model.Course{}), f)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Order("`order` ASC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListFeatured(ctx context.Context, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("featured = ?", true).
		Order("`order` ASC, created_at DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// Update writes the editable columns. enrollment_count is only changed by IncrementEnrollmentCount.
func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Model(course).
		Select("title", "description", "featured", "level", "duration", "thumbnail", "category_id", "order", "updated_at").
		Updates(course).Error
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Course{}).Error
}

func (r *CourseRepository) IncrementEnrollmentCount(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", id).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + ?", 1)).Error
}

func (r *CourseRepository) CountModules(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Module{}).Where("course_id = ?", id).Count(&count).Error
	return count, err
}

// CountContent counts lessons and quizzes that reference the course, at any depth.
func (r *CourseRepository) CountContent(ctx context.Context, id string) (lessons, quizzes int64, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&model.Lesson{}).Where("course_id = ?", id).Count(&lessons).Error; err != nil {
		return
	}
	err = db.Model(&model.Quiz{}).Where("course_id = ?", id).Count(&quizzes).Error
	return
}

func (r *CourseRepository) NextOrder(ctx context.Context, categoryID *string) (int, error) {
	return NextOrder(ctx, r.DB, "courses", CoursesInCategory(categoryID))
}

func (r *CourseRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "courses", "order", updates)
}

func orderBySiblingOrder(db *gorm.DB) *gorm.DB {
	return db.Order("`order` ASC")
}

// ContentFilter narrows lesson and quiz listings. Category and level apply through the owning course.
type ContentFilter struct {
	Search     string
	CategoryID string
	Level      string
}

func (f ContentFilter) apply(db, query *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.CategoryID != "" || f.Level != "" {
		courses := db.Model(&model.Course{}).Select("id")
		if f.CategoryID != "" {
			courses = courses.Where("category_id = ?", f.CategoryID)
		}
		if f.Level != "" {
			courses = courses.Where("level = ?", f.Level)
		}
		query = query.Where("course_id IN (?)", courses)
	}
	return query
}
