package repository

import (
	"context"
	"time"

	"golang-stock-fundamentals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationsRepository reads and writes analyst recommendation
// summaries.
type RecommendationsRepository interface {
	GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error)
	Upsert(ctx context.Context, recommendations []entity.Recommendation) error
}

type recommendationsRepository struct {
	db *gorm.DB
}

func NewRecommendationsRepository(db *gorm.DB) RecommendationsRepository {
	return &recommendationsRepository{db: db}
}

// GetSymbolsWithData returns the distinct symbols whose recommendation window
// overlaps [start, end].
func (r *recommendationsRepository) GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Recommendation{}).
		Distinct().
		Where("period_end >= ? AND period_start <= ?", start, end).
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Upsert refreshes the aggregated counts on conflict so each ingestion run
// carries the provider's latest aggregation for a window.
func (r *recommendationsRepository) Upsert(ctx context.Context, recommendations []entity.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "period_end"}},
			DoUpdates: clause.AssignmentColumns([]string{"period_start", "strong_buy", "buy", "hold", "sell", "strong_sell"}),
		}).
		Create(&recommendations).Error
}
