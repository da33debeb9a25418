package repository

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// reorderConcurrency bounds the in-flight single-row updates of one reorder batch.
const reorderConcurrency = 8

// OrderUpdate moves one sibling to a new position.
type OrderUpdate struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order" binding:"min=0"`
}

// SiblingScope restricts a query to one sibling group.
type SiblingScope func(*gorm.DB) *gorm.DB

func ModulesOfCourse(courseID string) SiblingScope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("course_id = ?", courseID)
	}
}

func SubModulesOfModule(moduleID string) SiblingScope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("module_id = ?", moduleID)
	}
}

// CoursesInCategory groups courses by category; a nil category is its own group.
func CoursesInCategory(categoryID *string) SiblingScope {
	return func(db *gorm.DB) *gorm.DB {
		if categoryID == nil || *categoryID == "" {
			return db.Where("category_id IS NULL")
		}
		return db.Where("category_id = ?", *categoryID)
	}
}

// InScope selects the lessons or quizzes owned directly by scope.
// Items of a submodule are excluded from their module's direct scope.
func InScope(scope model.Scope) SiblingScope {
	return func(db *gorm.DB) *gorm.DB {
		if scope.Kind == model.ScopeSubModule {
			return db.Where("sub_module_id = ?", scope.ID)
		}
		return db.Where("module_id = ? AND sub_module_id IS NULL", scope.ID)
	}
}

// NextOrder returns max(order)+1 within the sibling group, or 0 for an empty group.
func NextOrder(ctx context.Context, db *gorm.DB, table string, scope SiblingScope) (int, error) {
	return nextValue(ctx, db, table, "order", scope)
}

func nextValue(ctx context.Context, db *gorm.DB, table, column string, scope SiblingScope) (int, error) {
	var max int
	query := db.WithContext(ctx).Table(table)
	if scope != nil {
		query = scope(query)
	}
	err := query.Select(fmt.Sprintf("COALESCE(MAX(`%s`), -1)", column)).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ReorderError lists the updates of a batch that failed. Updates that succeeded stay applied.
type ReorderError struct {
	Failed []string
	Err    error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder failed for %s: %v", strings.Join(e.Failed, ", "), e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// ApplyOrder writes each update independently and concurrently, then waits for all of them.
// An ID that matches no row is skipped. There is no cross-row transaction and no check
// that the resulting orders are unique or contiguous.
func ApplyOrder(ctx context.Context, db *gorm.DB, table, column string, updates []OrderUpdate) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		errs   error
		failed []string
	)
	g.SetLimit(reorderConcurrency)

	now := time.Now()
	for _, u := range updates {
		u := u
		g.Go(func() error {
			err := db.WithContext(ctx).Table(table).
				Where("id = ?", u.ID).
				Updates(map[string]interface{}{column: u.Order, "updated_at": now}).Error
			if err != nil {
				mu.Lock()
				failed = append(failed, u.ID)
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", u.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if errs != nil {
		return &ReorderError{Failed: failed, Err: errs}
	}
	return nil
}
