package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

// ScopeRequest names the owner of a lesson or quiz. SubModuleID wins when both are set,
// provided the submodule belongs to ModuleID.
type ScopeRequest struct {
	ModuleID    string `json:"moduleId"`
	SubModuleID string `json:"subModuleId"`
}

func (r ScopeRequest) IsSet() bool {
	return r.ModuleID != "" || r.SubModuleID != ""
}

type PlacementResolver struct {
	Modules    *repository.ModuleRepository
	SubModules *repository.SubModuleRepository
}

func NewPlacementResolver(modules *repository.ModuleRepository, subModules *repository.SubModuleRepository) *PlacementResolver {
	return &PlacementResolver{Modules: modules, SubModules: subModules}
}

// Resolve loads the ancestor chain of the requested scope.
func (r *PlacementResolver) Resolve(ctx context.Context, req ScopeRequest) (model.Placement, error) {
	switch {
	case req.SubModuleID != "":
		sub, err := r.SubModules.FindByID(ctx, req.SubModuleID)
		if err != nil {
			return model.Placement{}, util.NotFoundOr(err, "submodule")
		}
		if req.ModuleID != "" && req.ModuleID != sub.ModuleID {
			return model.Placement{}, util.NewValidationError("submodule does not belong to module", "subModuleId")
		}
		module, err := r.Modules.FindByID(ctx, sub.ModuleID)
		if err != nil {
			return model.Placement{}, util.NotFoundOr(err, "module")
		}
		subID := sub.ID
		return model.Placement{
			Scope:       model.SubModuleScope(sub.ID),
			CourseID:    module.CourseID,
			ModuleID:    module.ID,
			SubModuleID: &subID,
		}, nil

	case req.ModuleID != "":
		module, err := r.Modules.FindByID(ctx, req.ModuleID)
		if err != nil {
			return model.Placement{}, util.NotFoundOr(err, "module")
		}
		return model.Placement{
			Scope:    model.ModuleScope(module.ID),
			CourseID: module.CourseID,
			ModuleID: module.ID,
		}, nil

	default:
		return model.Placement{}, util.NewValidationError("a module or submodule is required", "moduleId", "subModuleId")
	}
}
