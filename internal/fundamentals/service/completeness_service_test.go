package service

import (
	"context"
	"testing"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePeriodStatementRepo struct {
	fakeStatementRepo
	periods map[string]map[string][]metrics.Period
}

func (f *fakePeriodStatementRepo) GetReportedPeriods(ctx context.Context, table string, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	out := make(map[string][]metrics.Period)
	for symbol, periods := range f.periods[table] {
		out[symbol] = periods
	}
	return out, nil
}

type fakePeriodFundamentalsRepo struct {
	fakeFundamentalsRepo
	periods map[string][]metrics.Period
}

func (f *fakePeriodFundamentalsRepo) GetReportedPeriods(ctx context.Context, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	out := make(map[string][]metrics.Period)
	for symbol, periods := range f.periods {
		out[symbol] = periods
	}
	return out, nil
}

type fakePriceHistoryRepo struct {
	dates map[string][]time.Time
}

func (f *fakePriceHistoryRepo) GetDates(ctx context.Context, start, end time.Time) (map[string][]time.Time, error) {
	out := make(map[string][]time.Time)
	for symbol, dates := range f.dates {
		out[symbol] = dates
	}
	return out, nil
}

func (f *fakePriceHistoryRepo) UpsertBars(ctx context.Context, bars []entity.PriceBar) error {
	return nil
}

type fakeSustainabilityRepo struct {
	symbols  []string
	upserted []entity.SustainabilityScore
}

func (f *fakeSustainabilityRepo) GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error) {
	return append([]string(nil), f.symbols...), nil
}

func (f *fakeSustainabilityRepo) Upsert(ctx context.Context, scores []entity.SustainabilityScore) error {
	f.upserted = append(f.upserted, scores...)
	return nil
}

type fakeRecommendationsRepo struct {
	symbols  []string
	upserted []entity.Recommendation
}

func (f *fakeRecommendationsRepo) GetSymbolsWithData(ctx context.Context, start, end time.Time) ([]string, error) {
	return append([]string(nil), f.symbols...), nil
}

func (f *fakeRecommendationsRepo) Upsert(ctx context.Context, recommendations []entity.Recommendation) error {
	f.upserted = append(f.upserted, recommendations...)
	return nil
}

type fakeReportCache struct {
	latest   *dto.CompletenessReport
	setCalls int
	getErr   error
	setErr   error
}

func (f *fakeReportCache) GetLatest(ctx context.Context) (*dto.CompletenessReport, error) {
	return f.latest, f.getErr
}

func (f *fakeReportCache) SetLatest(ctx context.Context, report *dto.CompletenessReport) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.latest = report
	f.setCalls++
	return nil
}

func TestGenerateReportPivotsAllTables(t *testing.T) {
	// One fiscal year window with five business days.
	start := date(2024, time.March, 25)
	end := date(2024, time.March, 29)
	period := metrics.Period{Start: date(2023, time.April, 1), End: date(2024, time.March, 31)}

	statementPeriods := make(map[string]map[string][]metrics.Period)
	for _, table := range common.StatementTables {
		statementPeriods[table] = map[string][]metrics.Period{
			"BBCA": {period},
			"ZZZZ": {period}, // not an active ticker, must be excluded
		}
	}

	svc := NewCompletenessService(
		&config.Config{},
		testLogger(t),
		nil,
		&fakeTickersRepo{tickers: []entity.Ticker{{Symbol: "BBCA"}, {Symbol: "GOTO"}}},
		&fakePeriodStatementRepo{periods: statementPeriods},
		&fakePeriodFundamentalsRepo{periods: map[string][]metrics.Period{"BBCA": {period}}},
		&fakePriceHistoryRepo{dates: map[string][]time.Time{
			"BBCA": {
				date(2024, time.March, 25),
				date(2024, time.March, 26),
				date(2024, time.March, 27),
				date(2024, time.March, 28),
				date(2024, time.March, 29),
			},
			"GOTO": {
				date(2024, time.March, 25),
			},
		}},
		&fakeSustainabilityRepo{symbols: []string{"BBCA"}},
		&fakeRecommendationsRepo{symbols: []string{"BBCA", "ZZZZ"}},
	)

	report, err := svc.GenerateReport(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, common.CompletenessTables, report.Tables)
	require.Len(t, report.Rows, 2)

	bbca := report.Rows[0]
	assert.Equal(t, "BBCA", bbca.Symbol)
	for _, table := range report.Tables {
		assert.Equal(t, 100.0, bbca.Scores[table], "table %s", table)
	}

	gotoRow := report.Rows[1]
	assert.Equal(t, "GOTO", gotoRow.Symbol)
	assert.Equal(t, 20.0, gotoRow.Scores[common.TablePriceHistory])
	assert.Equal(t, 0.0, gotoRow.Scores[common.TableBalanceSheet])
	assert.Equal(t, 0.0, gotoRow.Scores[common.TableSustainability])
}

func TestLatestReportWithoutCacheReturnsNil(t *testing.T) {
	svc := NewCompletenessService(
		&config.Config{},
		testLogger(t),
		nil,
		&fakeTickersRepo{},
		&fakePeriodStatementRepo{},
		&fakePeriodFundamentalsRepo{},
		&fakePriceHistoryRepo{},
		&fakeSustainabilityRepo{},
		&fakeRecommendationsRepo{},
	)

	report, err := svc.LatestReport(context.Background())

	require.NoError(t, err)
	assert.Nil(t, report)
}

func cachedReportService(t *testing.T, cache *fakeReportCache) CompletenessService {
	t.Helper()
	return NewCompletenessService(
		&config.Config{},
		testLogger(t),
		cache,
		&fakeTickersRepo{tickers: []entity.Ticker{{Symbol: "BBCA"}}},
		&fakePeriodStatementRepo{},
		&fakePeriodFundamentalsRepo{},
		&fakePriceHistoryRepo{},
		&fakeSustainabilityRepo{},
		&fakeRecommendationsRepo{},
	)
}

func TestGenerateReportDoesNotPublishLatest(t *testing.T) {
	cache := &fakeReportCache{}
	svc := cachedReportService(t, cache)

	report, err := svc.GenerateReport(context.Background(), date(2024, time.January, 1), date(2024, time.June, 30))

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Zero(t, cache.setCalls)
	assert.Nil(t, cache.latest)
}

func TestRefreshLatestPublishesReport(t *testing.T) {
	cache := &fakeReportCache{}
	svc := cachedReportService(t, cache)

	report, err := svc.RefreshLatest(context.Background())

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, cache.setCalls)
	require.NotNil(t, cache.latest)

	cached, err := svc.LatestReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cache.latest, cached)
}
