package dto

import (
	"time"

	"golang-stock-fundamentals/internal/fundamentals/metrics"
)

// CompletenessReport is the pivoted completeness report: one row per symbol,
// one completeness column per tracked table.
type CompletenessReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Tables      []string      `json:"tables"`
	Rows        []metrics.Row `json:"rows"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
