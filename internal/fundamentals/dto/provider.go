package dto

// ProviderLineItem is one raw statement line as served by the market data
// provider. Only a period end is supplied; the period start is synthesized
// at ingestion time.
type ProviderLineItem struct {
	StatementType string   `json:"statement_type"`
	LineItem      string   `json:"line_item"`
	PeriodEnd     string   `json:"period_end"`
	Value         *float64 `json:"value"`
}

// ProviderStatements is the provider's statement payload for one symbol.
type ProviderStatements struct {
	Symbol string             `json:"symbol"`
	Items  []ProviderLineItem `json:"items"`
}

// ProviderBar is one daily OHLCV bar as served by the provider.
type ProviderBar struct {
	Date      string   `json:"date"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *int64   `json:"volume"`
	Dividends *float64 `json:"dividends"`
	Splits    *float64 `json:"stock_splits"`
}

// ProviderHistory is the provider's price history payload for one symbol.
type ProviderHistory struct {
	Symbol string        `json:"symbol"`
	Bars   []ProviderBar `json:"bars"`
}

// ProviderInfo is the provider's company snapshot for one symbol.
type ProviderInfo struct {
	Symbol        string   `json:"symbol"`
	MarketCap     *float64 `json:"market_cap"`
	RevenueGrowth *float64 `json:"revenue_growth"`
}

// ProviderRecommendation is one aggregated analyst recommendation row. The
// period is relative to the request date ("0m" is the current month, "-1m"
// the one before).
type ProviderRecommendation struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strong_buy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strong_sell"`
}

// ProviderRecommendations is the provider's recommendation payload for one
// symbol.
type ProviderRecommendations struct {
	Symbol string                   `json:"symbol"`
	Rows   []ProviderRecommendation `json:"rows"`
}

// ProviderSustainability is the provider's ESG snapshot for one symbol.
type ProviderSustainability struct {
	Symbol           string   `json:"symbol"`
	TotalEsg         *float64 `json:"total_esg"`
	EnvironmentScore *float64 `json:"environment_score"`
	SocialScore      *float64 `json:"social_score"`
	GovernanceScore  *float64 `json:"governance_score"`
}
