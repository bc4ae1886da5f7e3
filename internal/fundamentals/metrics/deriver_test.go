package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping() Mapping {
	return Mapping{
		KeyTotalAssets:        {{Table: "balance_sheet", Field: "Total Assets"}},
		KeyTotalLiabilities:   {{Table: "balance_sheet", Field: "Total Liabilities"}},
		KeyTotalRevenue:       {{Table: "financials", Field: "Total Revenue"}},
		KeyEbitda:             {{Table: "financials", Field: "EBITDA"}},
		KeyCurrentAssets:      {{Table: "balance_sheet", Field: "Current Assets"}},
		KeyCurrentLiabilities: {{Table: "balance_sheet", Field: "Current Liabilities"}},
		KeyInventory:          {{Table: "balance_sheet", Field: "Inventory"}},
		KeySharesOutstanding:  {{Table: "balance_sheet", Field: "Ordinary Shares Number"}},
	}
}

func TestDeriveBookValue(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{"balance_sheet": {
		lineItem("Total Assets", f64(1000), start, end),
		lineItem("Total Liabilities", f64(400), start, end),
	}}

	f := Derive("RELIANCE", start, end, data, testMapping())
	require.NotNil(t, f.BookValue)
	assert.Equal(t, 600.0, *f.BookValue)
	assert.Equal(t, "RELIANCE", f.Symbol)
	assert.Equal(t, start, f.PeriodStart)
	assert.Equal(t, end, f.PeriodEnd)
}

func TestDeriveZeroDenominatorYieldsNil(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{"financials": {
		lineItem("Total Revenue", f64(0), start, end),
		lineItem("EBITDA", f64(500), start, end),
	}}

	f := Derive("TCS", start, end, data, testMapping())
	require.NotNil(t, f.Ebitda)
	assert.Equal(t, 500.0, *f.Ebitda)
	assert.Nil(t, f.EbitdaMargin)
	// A reported zero revenue is still a present value.
	require.NotNil(t, f.TotalRevenue)
	assert.Equal(t, 0.0, *f.TotalRevenue)
}

func TestDeriveNullPropagation(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{"financials": {lineItem("EBITDA", f64(500), start, end)}}

	f := Derive("TCS", start, end, data, testMapping())
	assert.Nil(t, f.EbitdaMargin)
	assert.Nil(t, f.BookValue)
	assert.Nil(t, f.TotalAssets)
	assert.Nil(t, f.RevenuePerShare)
}

func TestDeriveQuickRatioRequiresInventory(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{"balance_sheet": {
		lineItem("Current Assets", f64(100), start, end),
		lineItem("Current Liabilities", f64(50), start, end),
	}}

	// Inventory absent: the ratio is null even though both other inputs exist.
	f := Derive("INFY", start, end, data, testMapping())
	require.NotNil(t, f.CurrentRatio)
	assert.Equal(t, 2.0, *f.CurrentRatio)
	assert.Nil(t, f.QuickRatio)

	// Inventory present as explicit zero: valid operand.
	data["balance_sheet"] = append(data["balance_sheet"], lineItem("Inventory", f64(0), start, end))
	f = Derive("INFY", start, end, data, testMapping())
	require.NotNil(t, f.QuickRatio)
	assert.Equal(t, 2.0, *f.QuickRatio)
}

func TestDeriveIdempotence(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{
		"balance_sheet": {
			lineItem("Total Assets", f64(1000), start, end),
			lineItem("Total Liabilities", f64(400), start, end),
			lineItem("Ordinary Shares Number", f64(10), start, end),
		},
		"financials": {
			lineItem("Total Revenue", f64(2000), start, end),
			lineItem("EBITDA", f64(500), start, end),
		},
	}

	first := Derive("HDFCBANK", start, end, data, testMapping())
	second := Derive("HDFCBANK", start, end, data, testMapping())
	assert.Equal(t, first, second)
}

func TestCoverage(t *testing.T) {
	start, end := testPeriod()
	data := SymbolData{"balance_sheet": {
		lineItem("Total Assets", f64(1000), start, end),
		lineItem("Total Liabilities", f64(400), start, end),
	}}

	f := Derive("WIPRO", start, end, data, testMapping())
	filled, total := Coverage(f)
	assert.Equal(t, 26, total)
	// Total assets and the derived book value are the only filled fields.
	assert.Equal(t, 2, filled)
}

func TestDivAndSubGuards(t *testing.T) {
	assert.Nil(t, div(nil, f64(5)))
	assert.Nil(t, div(f64(5), nil))
	assert.Nil(t, div(f64(5), f64(0)))
	require.NotNil(t, div(f64(0), f64(5)))
	assert.Equal(t, 0.0, *div(f64(0), f64(5)))
	assert.Nil(t, sub(nil, f64(1)))
	assert.Equal(t, -1.0, *sub(f64(0), f64(1)))
}
