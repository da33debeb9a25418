package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type LessonRequest struct {
	ScopeRequest
	Title         string  `json:"title" binding:"required,max=255"`
	Description   string  `json:"description"`
	Content       string  `json:"content"`
	VideoURL      string  `json:"videoUrl"`
	VideoDuration float64 `json:"videoDuration" binding:"min=0"`
	Thumbnail     string  `json:"thumbnail"`
}

type LessonService struct {
	Repo      *repository.LessonRepository
	Placement *PlacementResolver
}

func NewLessonService(repo *repository.LessonRepository, placement *PlacementResolver) *LessonService {
	return &LessonService{Repo: repo, Placement: placement}
}

func (s *LessonService) Create(ctx context.Context, req LessonRequest) (*model.Lesson, error) {
	placement, err := s.Placement.Resolve(ctx, req.ScopeRequest)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.NextOrder(ctx, placement.Scope)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		Title:         req.Title,
		Description:   req.Description,
		Content:       req.Content,
		VideoURL:      req.VideoURL,
		VideoDuration: req.VideoDuration,
		Thumbnail:     req.Thumbnail,
		Order:         order,
	}
	lesson.Place(placement)

	if err := s.Repo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Get(ctx context.Context, id string) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "lesson")
	}
	return lesson, nil
}

func (s *LessonService) List(ctx context.Context, f repository.ContentFilter, p util.Page) ([]model.Lesson, int64, error) {
	return s.Repo.List(ctx, f, p.Offset(), p.Limit)
}

// ListByModule returns only the lessons owned directly by the module.
func (s *LessonService) ListByModule(ctx context.Context, moduleID string) ([]model.Lesson, error) {
	if _, err := s.Placement.Resolve(ctx, ScopeRequest{ModuleID: moduleID}); err != nil {
		return nil, err
	}
	return s.Repo.ListByScope(ctx, model.ModuleScope(moduleID))
}

func (s *LessonService) ListBySubModule(ctx context.Context, subModuleID string) ([]model.Lesson, error) {
	if _, err := s.Placement.Resolve(ctx, ScopeRequest{SubModuleID: subModuleID}); err != nil {
		return nil, err
	}
	return s.Repo.ListByScope(ctx, model.SubModuleScope(subModuleID))
}

// Update edits the lesson and, when a different scope is requested, appends it to that scope.
func (s *LessonService) Update(ctx context.Context, id string, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "lesson")
	}

	if req.IsSet() {
		placement, err := s.Placement.Resolve(ctx, req.ScopeRequest)
		if err != nil {
			return nil, err
		}
		if placement.Scope != lesson.Scope() {
			order, err := s.Repo.NextOrder(ctx, placement.Scope)
			if err != nil {
				return nil, err
			}
			lesson.Place(placement)
			lesson.Order = order
			if err := s.Repo.UpdatePlacement(ctx, lesson); err != nil {
				return nil, err
			}
		}
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.VideoDuration = req.VideoDuration
	lesson.Thumbnail = req.Thumbnail
	if err := s.Repo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AttachVideo stores an uploaded video on the lesson.
func (s *LessonService) AttachVideo(ctx context.Context, id, url string, duration float64, thumbnail string) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "lesson")
	}

	lesson.VideoURL = url
	lesson.VideoDuration = duration
	if thumbnail != "" {
		lesson.Thumbnail = thumbnail
	}
	if err := s.Repo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Delete leaves completion records in place; progress only counts lessons that still exist.
func (s *LessonService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return util.NotFoundOr(err, "lesson")
	}
	return s.Repo.Delete(ctx, id)
}

func (s *LessonService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("lesson", s.Repo.Reorder(ctx, req.Items))
}
