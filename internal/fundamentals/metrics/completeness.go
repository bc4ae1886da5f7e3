package metrics

import (
	"math"
	"sort"
	"time"

	"golang-stock-fundamentals/pkg/utils"
)

// Entry is one (symbol, table) completeness measurement, recomputed fully on
// each report run.
type Entry struct {
	Symbol string  `json:"symbol"`
	Table  string  `json:"table"`
	Pct    float64 `json:"completeness_pct"`
}

// Row is one pivoted report row: one completeness column per tracked table,
// missing combinations filled with 0.
type Row struct {
	Symbol string             `json:"symbol"`
	Scores map[string]float64 `json:"scores"`
}

// ScoreDaily scores a per-day table: expected is the count of business days
// in [start, end], actual the count of distinct dates present per symbol.
func ScoreDaily(table string, datesBySymbol map[string][]time.Time, start, end time.Time) []Entry {
	expected := utils.BusinessDays(start, end)
	entries := make([]Entry, 0, len(datesBySymbol))
	for symbol, dates := range datesBySymbol {
		distinct := make(map[time.Time]struct{}, len(dates))
		for _, d := range dates {
			distinct[utils.DateOnly(d)] = struct{}{}
		}
		entries = append(entries, Entry{
			Symbol: symbol,
			Table:  table,
			Pct:    Pct(len(distinct), expected),
		})
	}
	return entries
}

// ScoreSnapshot scores a single-snapshot table. Symbols with any row in range
// are complete; symbols without rows are omitted from the result entirely,
// not emitted as zero.
func ScoreSnapshot(table string, symbols []string) []Entry {
	entries := make([]Entry, 0, len(symbols))
	for _, symbol := range symbols {
		entries = append(entries, Entry{Symbol: symbol, Table: table, Pct: Pct(1, 1)})
	}
	return entries
}

// ScorePeriodic scores a fiscal-period table: expected is the count of
// distinct fiscal years overlapping [start, end], actual the count of
// distinct reporting periods with usable data.
func ScorePeriodic(table string, periodsBySymbol map[string][]Period, start, end time.Time) []Entry {
	expected := utils.FiscalYearsBetween(start, end)
	entries := make([]Entry, 0, len(periodsBySymbol))
	for symbol, periods := range periodsBySymbol {
		distinct := make(map[Period]struct{}, len(periods))
		for _, p := range periods {
			distinct[Period{Start: utils.DateOnly(p.Start), End: utils.DateOnly(p.End)}] = struct{}{}
		}
		entries = append(entries, Entry{
			Symbol: symbol,
			Table:  table,
			Pct:    Pct(len(distinct), expected),
		})
	}
	return entries
}

// Pct computes round(100*actual/expected, 2), defined as 0 when expected is
// not positive.
func Pct(actual, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	return math.Round(float64(actual)/float64(expected)*10000) / 100
}

// Pivot combines per-table entries into one wide row per symbol, ordered by
// symbol. Every row carries a score for every listed table, defaulting to 0.
func Pivot(entries []Entry, tables []string) []Row {
	bySymbol := make(map[string]map[string]float64)
	for _, e := range entries {
		scores, ok := bySymbol[e.Symbol]
		if !ok {
			scores = make(map[string]float64, len(tables))
			for _, t := range tables {
				scores[t] = 0
			}
			bySymbol[e.Symbol] = scores
		}
		scores[e.Table] = e.Pct
	}

	symbols := make([]string, 0, len(bySymbol))
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	rows := make([]Row, 0, len(symbols))
	for _, symbol := range symbols {
		rows = append(rows, Row{Symbol: symbol, Scores: bySymbol[symbol]})
	}
	return rows
}
