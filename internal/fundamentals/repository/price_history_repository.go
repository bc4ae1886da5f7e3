package repository

import (
	"context"
	"time"

	"golang-stock-fundamentals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceHistoryRepository reads and writes daily price bars.
type PriceHistoryRepository interface {
	GetDates(ctx context.Context, start, end time.Time) (map[string][]time.Time, error)
	UpsertBars(ctx context.Context, bars []entity.PriceBar) error
}

type priceHistoryRepository struct {
	db *gorm.DB
}

func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

// GetDates returns, per symbol, the trading dates present in [start, end].
func (r *priceHistoryRepository) GetDates(ctx context.Context, start, end time.Time) (map[string][]time.Time, error) {
	var rows []entity.PriceBar
	if err := r.db.WithContext(ctx).
		Model(&entity.PriceBar{}).
		Select("symbol", "date").
		Where("date >= ? AND date <= ?", start, end).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	dates := make(map[string][]time.Time)
	for _, row := range rows {
		dates[row.Symbol] = append(dates[row.Symbol], row.Date)
	}
	return dates, nil
}

// UpsertBars replaces bars on conflict so re-ingestion refreshes adjusted
// values.
func (r *priceHistoryRepository) UpsertBars(ctx context.Context, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "dividends", "stock_splits"}),
		}).
		CreateInBatches(&bars, 1000).Error
}
