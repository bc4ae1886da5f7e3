package repository

import (
	"context"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FundamentalsRepository persists derived metrics records and the
// company-info columns that share the fundamentals table.
type FundamentalsRepository interface {
	Upsert(ctx context.Context, fundamental *entity.Fundamental) error
	UpsertCompanyInfo(ctx context.Context, fundamental *entity.Fundamental) error
	GetBySymbol(ctx context.Context, symbol string) ([]entity.Fundamental, error)
	GetReportedPeriods(ctx context.Context, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error)
}

// DerivedColumns are the columns the derivation engine owns. Conflict updates
// are limited to these so the company-info columns written by
// UpsertCompanyInfo survive recompute runs.
var DerivedColumns = []string{
	"period_start",
	"book_value",
	"ebitda",
	"ebitda_margin",
	"net_income_to_common",
	"revenue_per_share",
	"total_revenue",
	"gross_margins",
	"operating_margins",
	"profit_margins",
	"free_cashflow",
	"operating_cashflow",
	"trailing_eps",
	"eps_ttm",
	"price_to_book",
	"price_to_sales_ttm",
	"debt_to_equity",
	"total_cash",
	"total_debt",
	"shares_outstanding",
	"return_on_assets",
	"return_on_equity",
	"current_ratio",
	"quick_ratio",
	"operating_cashflow_per_share",
	"gross_profit",
	"total_assets",
	"updated_at",
}

// CompanyInfoColumns are the columns owned by the company-info ingestion
// path.
var CompanyInfoColumns = []string{
	"market_cap",
	"revenue_growth",
	"updated_at",
}

type fundamentalsRepository struct {
	db *gorm.DB
}

func NewFundamentalsRepository(db *gorm.DB) FundamentalsRepository {
	return &fundamentalsRepository{db: db}
}

// Upsert inserts or replaces the derived columns of the record keyed on
// (symbol, period_end). Re-running derivation on identical inputs leaves the
// row unchanged; columns outside DerivedColumns are never touched on
// conflict.
func (r *fundamentalsRepository) Upsert(ctx context.Context, fundamental *entity.Fundamental) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "period_end"}},
			DoUpdates: clause.AssignmentColumns(DerivedColumns),
		}).
		Create(fundamental).Error
}

// UpsertCompanyInfo writes the company-info columns for the record keyed on
// (symbol, period_end), creating the row if derivation has not produced it
// yet. Derived columns are never touched on conflict.
func (r *fundamentalsRepository) UpsertCompanyInfo(ctx context.Context, fundamental *entity.Fundamental) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "period_end"}},
			DoUpdates: clause.AssignmentColumns(CompanyInfoColumns),
		}).
		Create(fundamental).Error
}

func (r *fundamentalsRepository) GetBySymbol(ctx context.Context, symbol string) ([]entity.Fundamental, error) {
	var records []entity.Fundamental
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("period_end").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *fundamentalsRepository) GetReportedPeriods(ctx context.Context, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	var rows []entity.Fundamental
	query := r.db.WithContext(ctx).
		Model(&entity.Fundamental{}).
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
