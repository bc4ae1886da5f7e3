package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDaily(t *testing.T) {
	// 2024-01-01 (Monday) through 2024-01-05 (Friday): five business days.
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 5)

	dates := map[string][]time.Time{
		"RELIANCE": {
			date(2024, time.January, 1),
			date(2024, time.January, 2),
			date(2024, time.January, 2), // duplicate date counted once
			date(2024, time.January, 4),
		},
	}

	entries := ScoreDaily("price_history", dates, start, end)
	require.Len(t, entries, 1)
	assert.Equal(t, "RELIANCE", entries[0].Symbol)
	assert.Equal(t, "price_history", entries[0].Table)
	assert.Equal(t, 60.0, entries[0].Pct)
}

func TestScoreSnapshotOmitsAbsentSymbols(t *testing.T) {
	// Only symbols that actually had rows in range are passed in; the result
	// must not invent zero rows for anyone else.
	entries := ScoreSnapshot("sustainability", []string{"TCS"})
	require.Len(t, entries, 1)
	assert.Equal(t, 100.0, entries[0].Pct)

	assert.Empty(t, ScoreSnapshot("sustainability", nil))
}

func TestScorePeriodic(t *testing.T) {
	// A two-fiscal-year window with one reported period.
	start := date(2022, time.June, 1)
	end := date(2023, time.June, 1)

	periods := map[string][]Period{
		"INFY": {
			{Start: date(2022, time.April, 1), End: date(2023, time.March, 31)},
			{Start: date(2022, time.April, 1), End: date(2023, time.March, 31)}, // duplicate pair
		},
	}

	entries := ScorePeriodic("balance_sheet", periods, start, end)
	require.Len(t, entries, 1)
	assert.Equal(t, 50.0, entries[0].Pct)
}

func TestPct(t *testing.T) {
	assert.Equal(t, 0.0, Pct(3, 0))
	assert.Equal(t, 100.0, Pct(4, 4))
	assert.Equal(t, 66.67, Pct(2, 3))
}

func TestPivotFillsMissingTablesWithZero(t *testing.T) {
	tables := []string{"balance_sheet", "price_history"}
	entries := []Entry{
		{Symbol: "TCS", Table: "balance_sheet", Pct: 50},
		{Symbol: "RELIANCE", Table: "price_history", Pct: 80},
		{Symbol: "RELIANCE", Table: "balance_sheet", Pct: 100},
	}

	rows := Pivot(entries, tables)
	require.Len(t, rows, 2)

	// Rows are ordered by symbol.
	assert.Equal(t, "RELIANCE", rows[0].Symbol)
	assert.Equal(t, 100.0, rows[0].Scores["balance_sheet"])
	assert.Equal(t, 80.0, rows[0].Scores["price_history"])

	assert.Equal(t, "TCS", rows[1].Symbol)
	assert.Equal(t, 50.0, rows[1].Scores["balance_sheet"])
	assert.Equal(t, 0.0, rows[1].Scores["price_history"])
}
