package common

const (
	TableBalanceSheet    = "balance_sheet"
	TableCashFlow        = "cash_flow"
	TableEarnings        = "earnings"
	TableFinancials      = "financials"
	TableFundamentals    = "fundamentals"
	TablePriceHistory    = "price_history"
	TableRecommendations = "recommendations"
	TableSustainability  = "sustainability"

	// DataTypeCompanyInfo labels ingestion-log rows for the provider's
	// company snapshot, which has no table of its own.
	DataTypeCompanyInfo = "company_info"

	RedisKeyCompletenessReport = "report.completeness.latest"
)

// StatementTables are the line-item tables the value resolver reads from.
var StatementTables = []string{
	TableBalanceSheet,
	TableEarnings,
	TableCashFlow,
	TableFinancials,
}

// CompletenessTables are the tracked tables of the completeness report, in
// report column order.
var CompletenessTables = []string{
	TableBalanceSheet,
	TableCashFlow,
	TableEarnings,
	TableFinancials,
	TableFundamentals,
	TablePriceHistory,
	TableRecommendations,
	TableSustainability,
}

// CompletenessFields lists, per tracked table, the columns of which at least
// one must be non-null for a row to count as usable data.
var CompletenessFields = map[string][]string{
	TableBalanceSheet: {"value", "line_item", "period_start", "period_end"},
	TableCashFlow:     {"value", "line_item", "period_start", "period_end"},
	TableEarnings:     {"value", "line_item", "period_start", "period_end"},
	TableFinancials:   {"value", "line_item", "period_start", "period_end"},
	TableFundamentals: {"market_cap", "revenue_growth", "profit_margins", "eps_ttm", "return_on_equity"},
}
