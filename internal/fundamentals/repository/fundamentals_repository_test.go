package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The derivation engine and the company-info ingestion path share the
// fundamentals table but own disjoint column sets; a conflict update from one
// path must never rewrite the other's columns.
func TestFundamentalsColumnOwnershipIsDisjoint(t *testing.T) {
	assert.NotContains(t, DerivedColumns, "market_cap")
	assert.NotContains(t, DerivedColumns, "revenue_growth")

	for _, col := range CompanyInfoColumns {
		if col == "updated_at" {
			continue
		}
		assert.NotContains(t, DerivedColumns, col)
	}

	// Conflict targets are never assignment targets.
	for _, cols := range [][]string{DerivedColumns, CompanyInfoColumns} {
		assert.NotContains(t, cols, "symbol")
		assert.NotContains(t, cols, "period_end")
		assert.NotContains(t, cols, "id")
		assert.NotContains(t, cols, "created_at")
	}

	// Every derived metric the engine fills has a column in the update set.
	for _, col := range []string{"book_value", "quick_ratio", "total_assets", "eps_ttm", "period_start"} {
		assert.Contains(t, DerivedColumns, col)
	}
}
