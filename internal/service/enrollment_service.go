package service

import (
	"context"
	"errors"
	"math"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/lock"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ClientInfo is the request metadata recorded with an enrollment.
type ClientInfo struct {
	UserAgent string
	Referrer  string
	IP        string
}

type Progress struct {
	CourseID         string `json:"courseId"`
	CompletedLessons int64  `json:"completedLessons"`
	TotalLessons     int64  `json:"totalLessons"`
	Percentage       int    `json:"percentage"`
}

// EnrollmentView is an enrollment with its completed-lesson set as lesson IDs.
type EnrollmentView struct {
	model.Enrollment
	CompletedLessons []string `json:"completedLessons"`
}

func NewEnrollmentView(e *model.Enrollment) EnrollmentView {
	return EnrollmentView{Enrollment: *e, CompletedLessons: e.CompletedLessonIDs()}
}

type EnrollmentSummary struct {
	EnrollmentView
	Course   *model.Course `json:"course"`
	Progress Progress      `json:"progress"`
}

type EnrollmentService struct {
	DB        *gorm.DB
	Repo      *repository.EnrollmentRepository
	Courses   *repository.CourseRepository
	Lessons   *repository.LessonRepository
	Analytics *repository.AnalyticsRepository
	Locker    lock.Locker
}

func NewEnrollmentService(
	db *gorm.DB,
	repo *repository.EnrollmentRepository,
	courses *repository.CourseRepository,
	lessons *repository.LessonRepository,
	analytics *repository.AnalyticsRepository,
	locker lock.Locker,
) *EnrollmentService {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &EnrollmentService{
		DB:        db,
		Repo:      repo,
		Courses:   courses,
		Lessons:   lessons,
		Analytics: analytics,
		Locker:    locker,
	}
}

var errAlreadyEnrolled = errors.New("already enrolled")

// Enroll creates the enrollment for (user, course) once. Repeated calls return the existing
// record with created=false and leave the course's enrollment count untouched.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string, info ClientInfo) (*model.Enrollment, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "EnrollmentService.Enroll", attribute.String("course.id", courseID))
	defer span.End()

	exists, err := s.Courses.Exists(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, util.NewNotFoundError("course")
	}

	release, err := s.Locker.Acquire(ctx, lock.EnrollKey(userID, courseID))
	if err != nil {
		// the unique index still guards against duplicates
		logger.Log.Warn("Enroll lock unavailable", zap.String("user_id", userID), zap.String("course_id", courseID), zap.Error(err))
	} else {
		defer release()
	}

	var (
		enrollment *model.Enrollment
		created    bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)

		existing, err := repo.Find(ctx, userID, courseID)
		if err == nil {
			enrollment = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		enrollment = &model.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: now}
		if err := repo.Create(ctx, enrollment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyEnrolled
			}
			return err
		}
		if err := s.Courses.WithTx(tx).IncrementEnrollmentCount(ctx, courseID); err != nil {
			return err
		}
		if err := s.Analytics.WithTx(tx).RecordEnrollment(ctx, &model.EnrollmentAnalytics{
			UserID:           userID,
			CourseID:         courseID,
			EnrolledAt:       now,
			ReferralSource:   util.ReferralSource(info.Referrer),
			DeviceType:       util.ClassifyDevice(info.UserAgent),
			IPAddress:        info.IP,
			UserAgent:        truncate(info.UserAgent, 500),
			CompletionStatus: "in_progress",
		}); err != nil {
			return err
		}
		created = true
		return nil
	})

	if errors.Is(err, errAlreadyEnrolled) {
		// a concurrent request won the insert
		enrollment, err = s.Repo.Find(ctx, userID, courseID)
		created = false
	}
	if err != nil {
		return nil, false, err
	}

	outcome := "existing"
	if created {
		outcome = "created"
		logger.Log.Info("User enrolled", zap.String("user_id", userID), zap.String("course_id", courseID))
	}
	monitoring.EnrollmentsTotal.WithLabelValues(outcome).Inc()

	return enrollment, created, nil
}

// CompleteLesson adds the lesson to the caller's completed set for the lesson's course.
// Completing a lesson twice changes nothing.
func (s *EnrollmentService) CompleteLesson(ctx context.Context, userID, lessonID string) (*Progress, error) {
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, util.NotFoundOr(err, "lesson")
	}

	enrollment, err := s.Repo.Find(ctx, userID, lesson.CourseID)
	if err != nil {
		return nil, util.NotFoundOr(err, "enrollment")
	}

	if _, err := s.Repo.AddCompletedLesson(ctx, enrollment.ID, lesson.ID); err != nil {
		return nil, err
	}
	return s.progress(ctx, enrollment)
}

func (s *EnrollmentService) Progress(ctx context.Context, userID, courseID string) (*Progress, error) {
	exists, err := s.Courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NewNotFoundError("course")
	}

	enrollment, err := s.Repo.Find(ctx, userID, courseID)
	if err != nil {
		return nil, util.NotFoundOr(err, "enrollment")
	}
	return s.progress(ctx, enrollment)
}

func (s *EnrollmentService) progress(ctx context.Context, enrollment *model.Enrollment) (*Progress, error) {
	total, err := s.Lessons.CountByCourse(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.Repo.CountCompletedInCourse(ctx, enrollment.ID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	return &Progress{
		CourseID:         enrollment.CourseID,
		CompletedLessons: completed,
		TotalLessons:     total,
		Percentage:       ProgressPercentage(completed, total),
	}, nil
}

// MyEnrollments lists the user's enrollments with course and progress. Enrollments whose
// course has since disappeared are returned without a course.
func (s *EnrollmentService) MyEnrollments(ctx context.Context, userID string) ([]EnrollmentSummary, error) {
	enrollments, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]EnrollmentSummary, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		summary := EnrollmentSummary{EnrollmentView: NewEnrollmentView(e)}

		course, err := s.Courses.FindByID(ctx, e.CourseID)
		switch {
		case err == nil:
			summary.Course = course
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		progress, err := s.progress(ctx, e)
		if err != nil {
			return nil, err
		}
		summary.Progress = *progress
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ProgressPercentage is completed/total*100 rounded to the nearest integer, 0 when total is 0.
func ProgressPercentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
