package dto

import "time"

// ComputeRunSummary reports the outcome of one derivation run. A run always
// completes; failures are counted, never fatal past startup.
type ComputeRunSummary struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Symbols       int       `json:"symbols"`
	FailedSymbols int       `json:"failed_symbols"`
	Periods       int       `json:"periods"`
	Inserted      int       `json:"inserted"`
	Skipped       int       `json:"skipped"`
	Failed        int       `json:"failed"`
}

// IngestRunSummary reports the outcome of one ingestion run.
type IngestRunSummary struct {
	StartedAt             time.Time `json:"started_at"`
	FinishedAt            time.Time `json:"finished_at"`
	Symbols               int       `json:"symbols"`
	FailedSymbols         int       `json:"failed_symbols"`
	PriceRecords          int       `json:"price_records"`
	StatementRecords      int       `json:"statement_records"`
	InfoRecords           int       `json:"info_records"`
	RecommendationRecords int       `json:"recommendation_records"`
	SustainabilityRecords int       `json:"sustainability_records"`
}
