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

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CategoryService struct {
	DB   *gorm.DB
	Repo *repository.CategoryRepository
}

func NewCategoryService(db *gorm.DB, repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{DB: db, Repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*model.Category, error) {
	exists, err := s.Repo.ExistsByName(ctx, req.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewConflictError("category %q already exists", req.Name)
	}

	next, err := s.Repo.NextFeaturedOrder(ctx)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		FeaturedOrder: next,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.Repo.FindByIDWithCourses(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "category")
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryService) ListWithCourses(ctx context.Context) ([]model.Category, error) {
	return s.Repo.ListWithCourses(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, req CategoryRequest) (*model.Category, error) {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "category")
	}

	if req.Name != category.Name {
		exists, err := s.Repo.ExistsByName(ctx, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.NewConflictError("category %q already exists", req.Name)
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image
	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses while courses are assigned unless force is set, in which case
// the courses are detached from the category in the same transaction.
func (s *CategoryService) Delete(ctx context.Context, id string, force bool) error {
	ctx, span := tracing.StartSpan(ctx, "CategoryService.Delete", attribute.String("category.id", id), attribute.Bool("force", force))
	defer span.End()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return util.NotFoundOr(err, "category")
		}

		count, err := repo.CountCourses(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 && !force {
			return util.NewConflictError("cannot delete category: %d %s still assigned", count, plural(count, "course is", "courses are"))
		}

		if count > 0 {
			detached, err := repo.DetachCourses(ctx, id)
			if err != nil {
				return err
			}
			logger.Log.Info("Detached courses from deleted category",
				zap.String("category_id", id),
				zap.Int64("courses", detached),
			)
		}
		return repo.Delete(ctx, id)
	})
}

func (s *CategoryService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("category", s.Repo.Reorder(ctx, req.Items))
}
