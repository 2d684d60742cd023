package services

import (
	"context"

	"github.com/justsurfingit/job-hub/internal/models"
	"gorm.io/gorm"
)

const defaultErrorLogLimit = 50

// ErrorLogService stores operational failures for later inspection.
type ErrorLogService struct {
	DB *gorm.DB
}

func NewErrorLogService(db *gorm.DB) *ErrorLogService {
	return &ErrorLogService{DB: db}
}

func (s *ErrorLogService) Record(ctx context.Context, source, errType, msg string, meta map[string]any) error {
	return s.DB.WithContext(ctx).Create(&models.ErrorLog{
		Source:    source,
		ErrorType: errType,
		Message:   msg,
		Metadata:  meta,
	}).Error
}

// Recent returns the newest entries first.
func (s *ErrorLogService) Recent(ctx context.Context, limit int) ([]models.ErrorLog, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultErrorLogLimit
	}
	logs := make([]models.ErrorLog, 0)
	err := s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
