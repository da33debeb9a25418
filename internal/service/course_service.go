package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/tracing"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

type CourseRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	Featured    bool              `json:"featured"`
	Level       model.CourseLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Duration    string            `json:"duration"`
	Thumbnail   string            `json:"thumbnail"`
	CategoryID  *string           `json:"categoryId"`
}

type CourseService struct {
	Repo        *repository.CourseRepository
	Categories  *repository.CategoryRepository
	Enrollments *repository.EnrollmentRepository
}

func NewCourseService(
	repo *repository.CourseRepository,
	categories *repository.CategoryRepository,
	enrollments *repository.EnrollmentRepository,
) *CourseService {
	return &CourseService{
		Repo:        repo,
		Categories:  categories,
		Enrollments: enrollments,
	}
}

func (s *CourseService) resolveCategory(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	if _, err := s.Categories.FindByID(ctx, *id); err != nil {
		return nil, util.NotFoundOr(err, "category")
	}
	categoryID := *id
	return &categoryID, nil
}

func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*model.Course, error) {
	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.NextOrder(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Featured:    req.Featured,
		Level:       req.Level,
		Duration:    req.Duration,
		Thumbnail:   req.Thumbnail,
		CategoryID:  categoryID,
		Order:       order,
	}
	if course.Level == "" {
		course.Level = model.LevelBeginner
	}

	if err := s.Repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get returns the course with its module outline.
func (s *CourseService) Get(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.Repo.FindByIDWithContent(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "course")
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context, f repository.CourseFilter, p util.Page) ([]model.Course, int64, error) {
	return s.Repo.List(ctx, f, p.Offset(), p.Limit)
}

func (s *CourseService) Featured(ctx context.Context, limit int) ([]model.Course, error) {
	return s.Repo.ListFeatured(ctx, limit)
}

// Update moves the course to the end of its new category when the category changes.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*model.Course, error) {
	course, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "course")
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if !sameRef(course.CategoryID, categoryID) {
		order, err := s.Repo.NextOrder(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		course.Order = order
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Featured = req.Featured
	if req.Level != "" {
		course.Level = req.Level
	}
	course.Duration = req.Duration
	course.Thumbnail = req.Thumbnail
	course.CategoryID = categoryID
	course.Category = nil

	if err := s.Repo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete is refused while anyone is enrolled or while the course still has content.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "CourseService.Delete", attribute.String("course.id", id))
	defer span.End()

	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return util.NotFoundOr(err, "course")
	}

	enrolled, err := s.Enrollments.CountByCourse(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return util.NewConflictError("cannot delete course: %d %s enrolled", enrolled, plural(enrolled, "user is", "users are"))
	}

	modules, err := s.Repo.CountModules(ctx, id)
	if err != nil {
		return err
	}
	lessons, quizzes, err := s.Repo.CountContent(ctx, id)
	if err != nil {
		return err
	}
	if modules+lessons+quizzes > 0 {
		return util.NewConflictError("cannot delete course: it still has %s", describeCounts(map[string]int64{
			"module": modules, "lesson": lessons, "quiz": quizzes,
		}, "module", "lesson", "quiz"))
	}

	return s.Repo.Delete(ctx, id)
}

func (s *CourseService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("course", s.Repo.Reorder(ctx, req.Items))
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

var pluralNouns = map[string]string{
	"module":    "modules",
	"submodule": "submodules",
	"lesson":    "lessons",
	"quiz":      "quizzes",
}

// describeCounts renders the non-zero counts in keys order, e.g. "2 lessons, 1 quiz".
func describeCounts(counts map[string]int64, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		n := counts[k]
		if n == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, k, pluralNouns[k])))
	}
	return strings.Join(parts, ", ")
}
