package curriculum

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// Importer creates catalogue entries through the content services, so every entity is
// validated and appended to its sibling group like one created over the API.
type Importer struct {
	Categories *service.CategoryService
	Courses    *service.CourseService
	Modules    *service.ModuleService
	SubModules *service.SubModuleService
	Lessons    *service.LessonService
	Quizzes    *service.QuizService
}

// Import stops at the first failure. Entities created before it are kept.
func (im *Importer) Import(ctx context.Context, c *Catalogue) (Stats, error) {
	var stats Stats

	for _, cat := range c.Categories {
		category, err := im.Categories.Create(ctx, service.CategoryRequest{
			Name:        cat.Name,
			Description: cat.Description,
			Image:       cat.Image,
		})
		if err != nil {
			return stats, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		stats.Categories++

		for _, course := range cat.Courses {
			if err := im.importCourse(ctx, course, &category.ID, &stats); err != nil {
				return stats, err
			}
		}
	}

	for _, course := range c.Courses {
		if err := im.importCourse(ctx, course, nil, &stats); err != nil {
			return stats, err
		}
	}

	logger.Log.Info("Curriculum imported",
		zap.Int("categories", stats.Categories),
		zap.Int("courses", stats.Courses),
		zap.Int("modules", stats.Modules),
		zap.Int("lessons", stats.Lessons),
		zap.Int("quizzes", stats.Quizzes),
	)
	return stats, nil
}

func (im *Importer) importCourse(ctx context.Context, c Course, categoryID *string, stats *Stats) error {
	course, err := im.Courses.Create(ctx, service.CourseRequest{
		Title:       c.Title,
		Description: c.Description,
		Featured:    c.Featured,
		Level:       model.CourseLevel(c.Level),
		Duration:    c.Duration,
		Thumbnail:   c.Thumbnail,
		CategoryID:  categoryID,
	})
	if err != nil {
		return fmt.Errorf("course %q: %w", c.Title, err)
	}
	stats.Courses++

	for _, m := range c.Modules {
		module, err := im.Modules.Create(ctx, service.CreateModuleRequest{
			CourseID:    course.ID,
			Title:       m.Title,
			Description: m.Description,
		})
		if err != nil {
			return fmt.Errorf("module %q: %w", m.Title, err)
		}
		stats.Modules++

		if err := im.importItems(ctx, m, service.ScopeRequest{ModuleID: module.ID}, stats); err != nil {
			return err
		}

		for _, s := range m.SubModules {
			subModule, err := im.SubModules.Create(ctx, service.CreateSubModuleRequest{
				ModuleID:    module.ID,
				Title:       s.Title,
				Description: s.Description,
			})
			if err != nil {
				return fmt.Errorf("submodule %q: %w", s.Title, err)
			}
			stats.SubModules++

			scope := service.ScopeRequest{ModuleID: module.ID, SubModuleID: subModule.ID}
			if err := im.importItems(ctx, s, scope, stats); err != nil {
				return err
			}
		}
	}
	return nil
}

func (im *Importer) importItems(ctx context.Context, m Module, scope service.ScopeRequest, stats *Stats) error {
	for _, l := range m.Lessons {
		_, err := im.Lessons.Create(ctx, service.LessonRequest{
			ScopeRequest:  scope,
			Title:         l.Title,
			Description:   l.Description,
			Content:       l.Content,
			VideoURL:      l.VideoURL,
			VideoDuration: l.VideoDuration,
		})
		if err != nil {
			return fmt.Errorf("lesson %q: %w", l.Title, err)
		}
		stats.Lessons++
	}

	for _, q := range m.Quizzes {
		questions := make([]service.QuestionRequest, len(q.Questions))
		for i, question := range q.Questions {
			questions[i] = service.QuestionRequest{
				Question:      question.Question,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
			}
		}
		_, err := im.Quizzes.Create(ctx, service.QuizRequest{
			ScopeRequest: scope,
			Title:        q.Title,
			Description:  q.Description,
			Questions:    questions,
		})
		if err != nil {
			return fmt.Errorf("quiz %q: %w", q.Title, err)
		}
		stats.Quizzes++
	}
	return nil
}
