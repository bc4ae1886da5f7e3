package entity

import "time"

// Fundamental is the derived metrics record for one (symbol, period) pair.
// Every metric field is independently nullable: a nil field means at least
// one of its raw inputs was missing for the period.
type Fundamental struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Symbol      string    `json:"symbol"`
	PeriodStart time.Time `json:"period_start" gorm:"type:date"`
	PeriodEnd   time.Time `json:"period_end" gorm:"type:date"`

	BookValue                 *float64 `json:"book_value"`
	Ebitda                    *float64 `json:"ebitda"`
	EbitdaMargin              *float64 `json:"ebitda_margin"`
	NetIncomeToCommon         *float64 `json:"net_income_to_common"`
	RevenuePerShare           *float64 `json:"revenue_per_share"`
	TotalRevenue              *float64 `json:"total_revenue"`
	GrossMargins              *float64 `json:"gross_margins"`
	OperatingMargins          *float64 `json:"operating_margins"`
	ProfitMargins             *float64 `json:"profit_margins"`
	FreeCashflow              *float64 `json:"free_cashflow"`
	OperatingCashflow         *float64 `json:"operating_cashflow"`
	TrailingEps               *float64 `json:"trailing_eps"`
	EpsTtm                    *float64 `json:"eps_ttm" gorm:"column:eps_ttm"`
	PriceToBook               *float64 `json:"price_to_book"`
	PriceToSalesTtm           *float64 `json:"price_to_sales_ttm" gorm:"column:price_to_sales_ttm"`
	DebtToEquity              *float64 `json:"debt_to_equity"`
	TotalCash                 *float64 `json:"total_cash"`
	TotalDebt                 *float64 `json:"total_debt"`
	SharesOutstanding         *float64 `json:"shares_outstanding"`
	ReturnOnAssets            *float64 `json:"return_on_assets"`
	ReturnOnEquity            *float64 `json:"return_on_equity"`
	CurrentRatio              *float64 `json:"current_ratio"`
	QuickRatio                *float64 `json:"quick_ratio"`
	OperatingCashflowPerShare *float64 `json:"operating_cashflow_per_share"`
	GrossProfit               *float64 `json:"gross_profit"`
	TotalAssets               *float64 `json:"total_assets"`

	// Written by the company-info ingestion path for the current fiscal
	// period; the derivation engine never assigns them on conflict.
	MarketCap     *float64 `json:"market_cap"`
	RevenueGrowth *float64 `json:"revenue_growth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Fundamental) TableName() string {
	return "fundamentals"
}
