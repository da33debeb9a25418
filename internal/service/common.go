package service

import (
	"errors"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

// ReorderRequest is the body of every reorder endpoint.
type ReorderRequest struct {
	Items []repository.OrderUpdate `json:"items" binding:"required,min=1,dive"`
}

// reorderError keeps the ids of a partially applied batch visible to the caller.
func reorderError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var re *repository.ReorderError
	if errors.As(err, &re) {
		monitoring.ReorderFailures.WithLabelValues(entity).Add(float64(len(re.Failed)))
		logger.Log.Warn("Reorder partially failed",
			zap.String("entity", entity),
			zap.Strings("failed", re.Failed),
			zap.Error(re.Err),
		)
		return &util.AppError{
			Kind:    util.KindUnexpected,
			Message: "reorder failed for: " + strings.Join(re.Failed, ", "),
			Err:     err,
		}
	}
	return err
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
