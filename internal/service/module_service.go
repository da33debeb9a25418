package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateModuleRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

type UpdateModuleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

type ModuleService struct {
	DB      *gorm.DB
	Repo    *repository.ModuleRepository
	Courses *repository.CourseRepository
}

func NewModuleService(db *gorm.DB, repo *repository.ModuleRepository, courses *repository.CourseRepository) *ModuleService {
	return &ModuleService{DB: db, Repo: repo, Courses: courses}
}

func (s *ModuleService) Create(ctx context.Context, req CreateModuleRequest) (*model.Module, error) {
	exists, err := s.Courses.Exists(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NewNotFoundError("course")
	}

	order, err := s.Repo.NextOrder(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	module := &model.Module{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       order,
	}
	if err := s.Repo.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) Get(ctx context.Context, id string) (*model.Module, error) {
	module, err := s.Repo.FindByIDWithChildren(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "module")
	}
	return module, nil
}

func (s *ModuleService) ListByCourse(ctx context.Context, courseID string) ([]model.Module, error) {
	exists, err := s.Courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NewNotFoundError("course")
	}
	return s.Repo.ListByCourse(ctx, courseID)
}

func (s *ModuleService) Update(ctx context.Context, id string, req UpdateModuleRequest) (*model.Module, error) {
	module, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "module")
	}

	module.Title = req.Title
	module.Description = req.Description
	if err := s.Repo.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// Delete removes the module and its submodules once no lesson or quiz remains anywhere beneath it.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "ModuleService.Delete", attribute.String("module.id", id))
	defer span.End()

	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return util.NotFoundOr(err, "module")
		}

		lessons, quizzes, err := repo.CountContent(ctx, id)
		if err != nil {
			return err
		}
		if total := lessons + quizzes; total > 0 {
			return util.NewConflictError("cannot delete module: %d %s still reference it (%s)",
				total, plural(total, "item", "items"),
				describeCounts(map[string]int64{"lesson": lessons, "quiz": quizzes}, "lesson", "quiz"))
		}

		if removed, err = repo.DeleteSubModules(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Log.Info("Module deleted", zap.String("module_id", id), zap.Int64("submodules_removed", removed))
	return nil
}

func (s *ModuleService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("module", s.Repo.Reorder(ctx, req.Items))
}
