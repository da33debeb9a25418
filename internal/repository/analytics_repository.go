package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository only appends; the records are read by reporting tools outside this service.
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) WithTx(tx *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: tx}
}

func (r *AnalyticsRepository) RecordEnrollment(ctx context.Context, record *model.EnrollmentAnalytics) error {
	return r.DB.WithContext(ctx).Create(record).Error
}
