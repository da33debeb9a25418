package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type CreateSubModuleRequest struct {
	ModuleID    string `json:"moduleId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

type SubModuleService struct {
	Repo    *repository.SubModuleRepository
	Modules *repository.ModuleRepository
}

func NewSubModuleService(repo *repository.SubModuleRepository, modules *repository.ModuleRepository) *SubModuleService {
	return &SubModuleService{Repo: repo, Modules: modules}
}

func (s *SubModuleService) Create(ctx context.Context, req CreateSubModuleRequest) (*model.SubModule, error) {
	if _, err := s.Modules.FindByID(ctx, req.ModuleID); err != nil {
		return nil, util.NotFoundOr(err, "module")
	}

	order, err := s.Repo.NextOrder(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}

	sub := &model.SubModule{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		Order:       order,
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubModuleService) Get(ctx context.Context, id string) (*model.SubModule, error) {
	sub, err := s.Repo.FindByIDWithChildren(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "submodule")
	}
	return sub, nil
}

func (s *SubModuleService) ListByModule(ctx context.Context, moduleID string) ([]model.SubModule, error) {
	if _, err := s.Modules.FindByID(ctx, moduleID); err != nil {
		return nil, util.NotFoundOr(err, "module")
	}
	return s.Repo.ListByModule(ctx, moduleID)
}

func (s *SubModuleService) Update(ctx context.Context, id string, req UpdateModuleRequest) (*model.SubModule, error) {
	sub, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "submodule")
	}

	sub.Title = req.Title
	sub.Description = req.Description
	if err := s.Repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubModuleService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return util.NotFoundOr(err, "submodule")
	}

	lessons, quizzes, err := s.Repo.CountContent(ctx, id)
	if err != nil {
		return err
	}
	if lessons+quizzes > 0 {
		return util.NewConflictError("cannot delete submodule: %d %s and %d %s still reference it",
			lessons, plural(lessons, "lesson", "lessons"),
			quizzes, plural(quizzes, "quiz", "quizzes"))
	}

	return s.Repo.Delete(ctx, id)
}

func (s *SubModuleService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("submodule", s.Repo.Reorder(ctx, req.Items))
}
