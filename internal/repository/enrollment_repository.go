package repository

import (
	"context"
	"errors"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) WithTx(tx *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: tx}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.DB.WithContext(ctx).Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("CompletedLessons").
		Preload("QuizResults").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("CompletedLessons").
		Preload("QuizResults").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// AddCompletedLesson inserts the completion unless the lesson is already in the set.
func (r *EnrollmentRepository) AddCompletedLesson(ctx context.Context, enrollmentID, lessonID string) (bool, error) {
	completion := &model.LessonCompletion{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		CompletedAt:  time.Now(),
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(completion)
	return res.RowsAffected > 0, res.Error
}

// CountCompletedInCourse counts completions whose lesson still belongs to the course.
func (r *EnrollmentRepository) CountCompletedInCourse(ctx context.Context, enrollmentID, courseID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.enrollment_id = ? AND lessons.course_id = ?", enrollmentID, courseID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) FindQuizResult(ctx context.Context, enrollmentID, quizID string) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.WithContext(ctx).
		Where("enrollment_id = ? AND quiz_id = ?", enrollmentID, quizID).
		First(&result).Error
	return &result, err
}

func (r *EnrollmentRepository) ListQuizResultsByUser(ctx context.Context, userID, quizID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if quizID != "" {
		query = query.Where("quiz_id = ?", quizID)
	}
	err := query.Order("completed_at DESC").Find(&results).Error
	return results, err
}

// QuizAttempts returns how many times the user has submitted the quiz, 0 if never.
func (r *EnrollmentRepository) QuizAttempts(ctx context.Context, userID, quizID string) (int, error) {
	var attempts int
	err := r.DB.WithContext(ctx).Model(&model.QuizResult{}).
		Select("COALESCE(MAX(attempts), 0)").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Scan(&attempts).Error
	return attempts, err
}

// RecordQuizAttempt folds one graded attempt into the (enrollment, quiz) result: attempts
// grows by one, score is overwritten and best_score keeps the maximum.
func (r *EnrollmentRepository) RecordQuizAttempt(ctx context.Context, enrollmentID, quizID, userID string, score, total int) (*model.QuizResult, error) {
	now := time.Now()
	update := func() (int64, error) {
		res := r.DB.WithContext(ctx).Model(&model.QuizResult{}).
			Where("enrollment_id = ? AND quiz_id = ?", enrollmentID, quizID).
			Updates(map[string]interface{}{
				"attempts":        gorm.Expr("attempts + 1"),
				"score":           score,
				"best_score":      gorm.Expr("CASE WHEN best_score < ? THEN ? ELSE best_score END", score, score),
				"total_questions": total,
				"completed_at":    now,
			})
		return res.RowsAffected, res.Error
	}

	n, err := update()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		result := &model.QuizResult{
			EnrollmentID:   enrollmentID,
			QuizID:         quizID,
			UserID:         userID,
			Attempts:       1,
			Score:          score,
			BestScore:      score,
			TotalQuestions: total,
			CompletedAt:    now,
		}
		createErr := r.DB.WithContext(ctx).Create(result).Error
		if createErr == nil {
			return result, nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, createErr
		}
		// a concurrent first attempt created the row
		if n, err = update(); err != nil || n == 0 {
			return nil, createErr
		}
	}

	return r.FindQuizResult(ctx, enrollmentID, quizID)
}
