package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) WithTx(tx *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: tx}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Create(lesson).Error
}

func (r *LessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) List(ctx context.Context, f ContentFilter, offset, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64

	query := f.apply(r.DB.WithContext(ctx), r.DB.WithContext(ctx).Model(&model.Lesson{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("course_id, module_id, `order` ASC").Offset(offset).Limit(limit).Find(&lessons).Error
	return lessons, total, err
}

func (r *LessonRepository) ListByScope(ctx context.Context, scope model.Scope) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := InScope(scope)(r.DB.WithContext(ctx)).Order("`order` ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Model(lesson).
		Select("title", "description", "content", "video_url", "video_duration", "thumbnail", "updated_at").
		Updates(lesson).Error
}

// UpdatePlacement moves the lesson to a new scope and order.
func (r *LessonRepository) UpdatePlacement(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Model(lesson).
		Select("course_id", "module_id", "sub_module_id", "order", "updated_at").
		Updates(lesson).Error
}

func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Lesson{}).Error
}

func (r *LessonRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *LessonRepository) NextOrder(ctx context.Context, scope model.Scope) (int, error) {
	return NextOrder(ctx, r.DB, "lessons", InScope(scope))
}

func (r *LessonRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "lessons", "order", updates)
}
