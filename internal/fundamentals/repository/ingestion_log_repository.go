package repository

import (
	"context"

	"golang-stock-fundamentals/internal/entity"

	"gorm.io/gorm"
)

// IngestionLogRepository records per-run outcomes for observability.
type IngestionLogRepository interface {
	Create(ctx context.Context, log *entity.DataIngestionLog) error
}

type ingestionLogRepository struct {
	db *gorm.DB
}

func NewIngestionLogRepository(db *gorm.DB) IngestionLogRepository {
	return &ingestionLogRepository{db: db}
}

func (r *ingestionLogRepository) Create(ctx context.Context, log *entity.DataIngestionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
