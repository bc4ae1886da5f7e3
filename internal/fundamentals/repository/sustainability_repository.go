package repository

import (
	"context"
	"time"

	"golang-stock-fundamentals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SustainabilityRepository reads and writes ESG snapshots.
type SustainabilityRepository interface {
	GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error)
	Upsert(ctx context.Context, scores []entity.SustainabilityScore) error
}

type sustainabilityRepository struct {
	db *gorm.DB
}

func NewSustainabilityRepository(db *gorm.DB) SustainabilityRepository {
	return &sustainabilityRepository{db: db}
}

// GetSymbolsWithData returns the distinct symbols with at least one snapshot
// in [start, end].
func (r *sustainabilityRepository) GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.SustainabilityScore{}).
		Distinct().
		Where("as_of >= ? AND as_of <= ?", start, end).
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *sustainabilityRepository) Upsert(ctx context.Context, scores []entity.SustainabilityScore) error {
	if len(scores) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "as_of"}},
			DoNothing: true,
		}).
		Create(&scores).Error
}
