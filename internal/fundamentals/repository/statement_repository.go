package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatementRepository reads and writes the normalized line-item tables
// (balance_sheet, financials, earnings, cash_flow). The table is passed
// explicitly because all four share the same row shape.
type StatementRepository interface {
	GetLineItems(ctx context.Context, table, symbol string) ([]entity.LineItem, error)
	GetSymbolData(ctx context.Context, symbol string) (metrics.SymbolData, error)
	GetReportedPeriods(ctx context.Context, table string, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error)
	UpsertLineItems(ctx context.Context, table string, items []entity.LineItem) error
}

type statementRepository struct {
	db *gorm.DB
}

func NewStatementRepository(db *gorm.DB) StatementRepository {
	return &statementRepository{db: db}
}

func (r *statementRepository) GetLineItems(ctx context.Context, table, symbol string) ([]entity.LineItem, error) {
	var items []entity.LineItem
	if err := r.db.WithContext(ctx).Table(table).Where("symbol = ?", symbol).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetSymbolData loads all statement tables for one symbol, keyed by table
// name, ready for value resolution.
func (r *statementRepository) GetSymbolData(ctx context.Context, symbol string) (metrics.SymbolData, error) {
	data := make(metrics.SymbolData, len(common.StatementTables))
	for _, table := range common.StatementTables {
		items, err := r.GetLineItems(ctx, table, symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s for %s: %w", table, symbol, err)
		}
		data[table] = items
	}
	return data, nil
}

// GetReportedPeriods returns, per symbol, the reporting periods overlapping
// [start, end] where at least one of the required fields is non-null.
func (r *statementRepository) GetReportedPeriods(ctx context.Context, table string, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	var rows []entity.LineItem
	query := r.db.WithContext(ctx).
		Table(table).
		Select("symbol", "period_start", "period_end").
		Where("period_end >= ? AND period_start <= ?", start, end)
	if cond := anyNotNull(requiredFields); cond != "" {
		query = query.Where(cond)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	periods := make(map[string][]metrics.Period)
	for _, row := range rows {
		periods[row.Symbol] = append(periods[row.Symbol], metrics.Period{
			Start: row.PeriodStart,
			End:   row.PeriodEnd,
		})
	}
	return periods, nil
}

func (r *statementRepository) UpsertLineItems(ctx context.Context, table string, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "line_item"}, {Name: "period_end"}},
			DoNothing: true,
		}).
		Create(&items).Error
}

// anyNotNull builds an OR filter over columns that must not all be null. The
// column names come from internal constants, never from user input.
func anyNotNull(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" IS NOT NULL")
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}
