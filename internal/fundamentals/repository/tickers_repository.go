package repository

import (
	"context"

	"golang-stock-fundamentals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TickersRepository manages the tracked symbol universe.
type TickersRepository interface {
	GetActive(ctx context.Context) ([]entity.Ticker, error)
	Upsert(ctx context.Context, tickers []entity.Ticker) error
}

type tickersRepository struct {
	db *gorm.DB
}

func NewTickersRepository(db *gorm.DB) TickersRepository {
	return &tickersRepository{db: db}
}

func (r *tickersRepository) GetActive(ctx context.Context) ([]entity.Ticker, error) {
	var tickers []entity.Ticker
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("symbol").
		Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

func (r *tickersRepository) Upsert(ctx context.Context, tickers []entity.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).
		Create(&tickers).Error
}
