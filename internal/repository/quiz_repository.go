package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) List(ctx context.Context, f ContentFilter, offset, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := f.apply(r.DB.WithContext(ctx), r.DB.WithContext(ctx).Model(&model.Quiz{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("course_id, module_id, `order` ASC").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("module_id, `order` ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByScope(ctx context.Context, scope model.Scope) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := InScope(scope)(r.DB.WithContext(ctx)).Order("`order` ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Model(quiz).
		Select("title", "description", "questions", "updated_at").
		Updates(quiz).Error
}

func (r *QuizRepository) UpdatePlacement(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Model(quiz).
		Select("course_id", "module_id", "sub_module_id", "order", "updated_at").
		Updates(quiz).Error
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Quiz{}).Error
}

func (r *QuizRepository) NextOrder(ctx context.Context, scope model.Scope) (int, error) {
	return NextOrder(ctx, r.DB, "quizzes", InScope(scope))
}

func (r *QuizRepository) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return ApplyOrder(ctx, r.DB, "quizzes", "order", updates)
}
