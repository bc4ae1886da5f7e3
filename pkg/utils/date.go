package utils

import "time"

// The reporting calendar follows an April-March fiscal year: a fiscal year is
// attributed to the calendar year containing its March 31 end.

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FiscalYear returns the fiscal year a date belongs to. Dates in April or
// later belong to the fiscal year starting that calendar year; January-March
// belong to the fiscal year started the previous April.
func FiscalYear(d time.Time) int {
	if d.Month() >= time.April {
		return d.Year()
	}
	return d.Year() - 1
}

// FiscalYearBounds returns the start and end dates of the fiscal year
// containing the given date.
func FiscalYearBounds(today time.Time) (time.Time, time.Time) {
	fy := FiscalYear(today)
	start := time.Date(fy, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(fy+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// FiscalYearsBetween counts the distinct fiscal years overlapped by the
// inclusive date range [start, end]. Returns 0 for an inverted range.
func FiscalYearsBetween(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0
	}
	return FiscalYear(end) - FiscalYear(start) + 1
}

// BusinessDays counts Monday-Friday dates in the inclusive range [start, end].
func BusinessDays(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// PeriodStartFromEnd synthesizes a period start for raw data that reports only
// a period end: one year before the end, plus one day.
func PeriodStartFromEnd(periodEnd time.Time) time.Time {
	return DateOnly(periodEnd).AddDate(-1, 0, 1)
}

// RelativeMonthBounds resolves a month offset from a reference date into the
// first and last day of the target calendar month. Offset 0 is the reference
// month, -1 the month before it.
func RelativeMonthBounds(from time.Time, offsetMonths int) (time.Time, time.Time) {
	// Anchor on the first of the month so the offset never overflows into
	// the next month on short months.
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offsetMonths, 0)
	end := start.AddDate(0, 1, -1)
	return start, end
}
