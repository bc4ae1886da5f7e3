package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYear(t *testing.T) {
	assert.Equal(t, 2023, FiscalYear(date(2023, time.April, 1)))
	assert.Equal(t, 2023, FiscalYear(date(2023, time.December, 31)))
	assert.Equal(t, 2023, FiscalYear(date(2024, time.March, 31)))
	assert.Equal(t, 2022, FiscalYear(date(2023, time.March, 31)))
}

func TestFiscalYearBounds(t *testing.T) {
	// March of year Y belongs to the fiscal year that started the prior April.
	start, end := FiscalYearBounds(date(2024, time.March, 15))
	assert.Equal(t, date(2023, time.April, 1), start)
	assert.Equal(t, date(2024, time.March, 31), end)

	// April of year Y starts a fresh fiscal year.
	start, end = FiscalYearBounds(date(2024, time.April, 2))
	assert.Equal(t, date(2024, time.April, 1), start)
	assert.Equal(t, date(2025, time.March, 31), end)
}

func TestFiscalYearsBetween(t *testing.T) {
	// A window inside one fiscal year.
	assert.Equal(t, 1, FiscalYearsBetween(date(2023, time.May, 1), date(2024, time.February, 1)))
	// A window crossing March 31 touches two fiscal years.
	assert.Equal(t, 2, FiscalYearsBetween(date(2024, time.March, 1), date(2024, time.April, 30)))
	// Multi-year span.
	assert.Equal(t, 3, FiscalYearsBetween(date(2021, time.June, 1), date(2023, time.June, 1)))
	// Inverted range.
	assert.Equal(t, 0, FiscalYearsBetween(date(2024, time.April, 2), date(2024, time.April, 1)))
}

func TestBusinessDays(t *testing.T) {
	// 2024-01-01 is a Monday; a full calendar week has five business days.
	assert.Equal(t, 5, BusinessDays(date(2024, time.January, 1), date(2024, time.January, 7)))
	// Weekend-only range.
	assert.Equal(t, 0, BusinessDays(date(2024, time.January, 6), date(2024, time.January, 7)))
	// Single business day.
	assert.Equal(t, 1, BusinessDays(date(2024, time.January, 3), date(2024, time.January, 3)))
}

func TestPeriodStartFromEnd(t *testing.T) {
	assert.Equal(t, date(2023, time.April, 1), PeriodStartFromEnd(date(2024, time.March, 31)))
	assert.Equal(t, date(2023, time.January, 1), PeriodStartFromEnd(date(2023, time.December, 31)))
}

func TestRelativeMonthBounds(t *testing.T) {
	// Offset 0 is the reference month itself.
	start, end := RelativeMonthBounds(date(2024, time.March, 15), 0)
	assert.Equal(t, date(2024, time.March, 1), start)
	assert.Equal(t, date(2024, time.March, 31), end)

	// Negative offsets walk back across year boundaries.
	start, end = RelativeMonthBounds(date(2024, time.February, 10), -2)
	assert.Equal(t, date(2023, time.December, 1), start)
	assert.Equal(t, date(2023, time.December, 31), end)

	// A 31-day reference month never overflows into a short target month.
	start, end = RelativeMonthBounds(date(2024, time.March, 31), -1)
	assert.Equal(t, date(2024, time.February, 1), start)
	assert.Equal(t, date(2024, time.February, 29), end)
}

func TestSameDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	a := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 31, 1, 0, 0, 0, loc)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, a.AddDate(0, 0, 1)))
}
