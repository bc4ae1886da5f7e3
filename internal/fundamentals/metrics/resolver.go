package metrics

import (
	"sort"
	"strings"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/pkg/utils"
)

// SymbolData holds one symbol's raw observations grouped by source table.
// Each slice is assumed to be already filtered to the symbol.
type SymbolData map[string][]entity.LineItem

// Resolve looks up a logical key through the mapping and returns the first
// candidate value with an exact period match. Absence of data is a normal
// outcome: an unmapped key, a missing table, or no matching row all yield
// nil, never an error. Rows with a null value are skipped so a later
// candidate can still supply the metric.
func Resolve(data SymbolData, m Mapping, key string, periodStart, periodEnd time.Time) *float64 {
	for _, candidate := range m.Candidates(key) {
		rows, ok := data[candidate.Table]
		if !ok {
			continue
		}
		for _, row := range rows {
			if !utils.SameDate(row.PeriodStart, periodStart) || !utils.SameDate(row.PeriodEnd, periodEnd) {
				continue
			}
			if !strings.EqualFold(strings.TrimSpace(row.LineItem), candidate.Field) {
				continue
			}
			if row.Value == nil {
				continue
			}
			v := *row.Value
			return &v
		}
	}
	return nil
}

// Period is a reporting interval attached to raw observations.
type Period struct {
	Start time.Time
	End   time.Time
}

// DiscoverPeriods extracts the distinct (period_start, period_end) pairs from
// a symbol's balance-sheet rows, ordered by period end. Other tables must
// report on the same bounds to be matched by the resolver.
func DiscoverPeriods(rows []entity.LineItem) []Period {
	seen := make(map[Period]struct{})
	var periods []Period
	for _, row := range rows {
		p := Period{Start: utils.DateOnly(row.PeriodStart), End: utils.DateOnly(row.PeriodEnd)}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].End.Before(periods[j].End)
	})
	return periods
}
