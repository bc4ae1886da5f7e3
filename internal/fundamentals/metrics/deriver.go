package metrics

import (
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/pkg/utils"
)

// Derive computes the full derived-metrics record for one (symbol, period)
// pair. Null propagation is strict: a field is nil if and only if at least
// one of its required raw inputs is nil. An explicit zero is a present
// operand; only a zero denominator nulls a quotient.
func Derive(symbol string, periodStart, periodEnd time.Time, data SymbolData, m Mapping) *entity.Fundamental {
	resolve := func(key string) *float64 {
		return Resolve(data, m, key, periodStart, periodEnd)
	}

	ta := resolve(KeyTotalAssets)
	tl := resolve(KeyTotalLiabilities)
	ebitda := resolve(KeyEbitda)
	rev := resolve(KeyTotalRevenue)
	ni := resolve(KeyNetIncome)
	shares := resolve(KeySharesOutstanding)
	gp := resolve(KeyGrossProfit)
	ebit := resolve(KeyEbit)
	fcf := resolve(KeyFreeCashflow)
	ocf := resolve(KeyOperatingCashflow)
	eps := resolve(KeyDilutedEps)
	price := resolve(KeyClosePrice)
	debt := resolve(KeyTotalDebt)
	equity := resolve(KeyTotalEquity)
	ca := resolve(KeyCurrentAssets)
	cl := resolve(KeyCurrentLiabilities)
	inv := resolve(KeyInventory)

	f := &entity.Fundamental{
		Symbol:      symbol,
		PeriodStart: utils.DateOnly(periodStart),
		PeriodEnd:   utils.DateOnly(periodEnd),
	}

	f.BookValue = sub(ta, tl)
	f.Ebitda = ebitda
	f.EbitdaMargin = div(ebitda, rev)
	f.NetIncomeToCommon = ni
	f.RevenuePerShare = div(rev, shares)
	f.TotalRevenue = rev
	f.GrossMargins = div(gp, rev)
	f.OperatingMargins = div(ebit, rev)
	f.ProfitMargins = div(ni, rev)
	f.FreeCashflow = fcf
	f.OperatingCashflow = ocf
	f.TrailingEps = eps
	f.EpsTtm = eps
	f.PriceToBook = div(price, f.BookValue)
	f.PriceToSalesTtm = div(price, rev)
	f.DebtToEquity = div(debt, equity)
	f.TotalCash = resolve(KeyTotalCash)
	f.TotalDebt = debt
	f.SharesOutstanding = shares
	f.ReturnOnAssets = div(ni, ta)
	f.ReturnOnEquity = div(ni, equity)
	f.CurrentRatio = div(ca, cl)
	// Quick ratio requires inventory to be reported: present-but-zero is
	// valid, a missing figure nulls the ratio.
	f.QuickRatio = div(sub(ca, inv), cl)
	f.OperatingCashflowPerShare = div(ocf, shares)
	f.GrossProfit = gp
	f.TotalAssets = ta

	return f
}

// Coverage reports how many derived metric fields are filled, excluding the
// identity and bookkeeping columns. Used for run-time reporting only.
func Coverage(f *entity.Fundamental) (filled, total int) {
	fields := metricFields(f)
	for _, v := range fields {
		if v != nil {
			filled++
		}
	}
	return filled, len(fields)
}

func metricFields(f *entity.Fundamental) []*float64 {
	return []*float64{
		f.BookValue,
		f.Ebitda,
		f.EbitdaMargin,
		f.NetIncomeToCommon,
		f.RevenuePerShare,
		f.TotalRevenue,
		f.GrossMargins,
		f.OperatingMargins,
		f.ProfitMargins,
		f.FreeCashflow,
		f.OperatingCashflow,
		f.TrailingEps,
		f.EpsTtm,
		f.PriceToBook,
		f.PriceToSalesTtm,
		f.DebtToEquity,
		f.TotalCash,
		f.TotalDebt,
		f.SharesOutstanding,
		f.ReturnOnAssets,
		f.ReturnOnEquity,
		f.CurrentRatio,
		f.QuickRatio,
		f.OperatingCashflowPerShare,
		f.GrossProfit,
		f.TotalAssets,
	}
}

func sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

// div returns num/den, or nil when either operand is missing or the
// denominator is zero. Never NaN or infinity.
func div(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := *num / *den
	return &v
}
