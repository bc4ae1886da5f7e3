package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/pkg/common"
	"golang-stock-fundamentals/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func f64(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeTickersRepo struct {
	tickers []entity.Ticker
	err     error
}

func (f *fakeTickersRepo) GetActive(ctx context.Context) ([]entity.Ticker, error) {
	return f.tickers, f.err
}

func (f *fakeTickersRepo) Upsert(ctx context.Context, tickers []entity.Ticker) error {
	return nil
}

type fakeStatementRepo struct {
	data map[string]metrics.SymbolData
	errs map[string]error
}

func (f *fakeStatementRepo) GetLineItems(ctx context.Context, table, symbol string) ([]entity.LineItem, error) {
	return f.data[symbol][table], nil
}

func (f *fakeStatementRepo) GetSymbolData(ctx context.Context, symbol string) (metrics.SymbolData, error) {
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.data[symbol], nil
}

func (f *fakeStatementRepo) GetReportedPeriods(ctx context.Context, table string, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	return nil, nil
}

func (f *fakeStatementRepo) UpsertLineItems(ctx context.Context, table string, items []entity.LineItem) error {
	return nil
}

type fakeFundamentalsRepo struct {
	upserted  []*entity.Fundamental
	infoRows  []*entity.Fundamental
	upsertErr error
}

func (f *fakeFundamentalsRepo) Upsert(ctx context.Context, fundamental *entity.Fundamental) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, fundamental)
	return nil
}

func (f *fakeFundamentalsRepo) UpsertCompanyInfo(ctx context.Context, fundamental *entity.Fundamental) error {
	f.infoRows = append(f.infoRows, fundamental)
	return nil
}

func (f *fakeFundamentalsRepo) GetBySymbol(ctx context.Context, symbol string) ([]entity.Fundamental, error) {
	return nil, nil
}

func (f *fakeFundamentalsRepo) GetReportedPeriods(ctx context.Context, requiredFields []string, start, end time.Time) (map[string][]metrics.Period, error) {
	return nil, nil
}

type fakeIngestionLogRepo struct {
	rows []*entity.DataIngestionLog
}

func (f *fakeIngestionLogRepo) Create(ctx context.Context, row *entity.DataIngestionLog) error {
	f.rows = append(f.rows, row)
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func statementData(symbol string) metrics.SymbolData {
	start := date(2023, time.April, 1)
	end := date(2024, time.March, 31)
	return metrics.SymbolData{
		common.TableBalanceSheet: {
			{Symbol: symbol, LineItem: "Total Assets", Value: f64(1000), PeriodStart: start, PeriodEnd: end},
			{Symbol: symbol, LineItem: "Total Liabilities Net Minority Interest", Value: f64(400), PeriodStart: start, PeriodEnd: end},
		},
	}
}

func computeTestMapping() metrics.Mapping {
	return metrics.Mapping{
		metrics.KeyTotalAssets: {
			{Table: common.TableBalanceSheet, Field: "Total Assets"},
		},
		metrics.KeyTotalLiabilities: {
			{Table: common.TableBalanceSheet, Field: "Total Liabilities Net Minority Interest"},
		},
	}
}

func TestComputeSymbolUpsertsOneRecordPerPeriod(t *testing.T) {
	fundamentalsRepo := &fakeFundamentalsRepo{}
	svc := NewComputeService(
		&config.Config{},
		testLogger(t),
		computeTestMapping(),
		&fakeTickersRepo{},
		&fakeStatementRepo{data: map[string]metrics.SymbolData{"BBCA": statementData("BBCA")}},
		fundamentalsRepo,
		&fakeIngestionLogRepo{},
		nil,
	)

	inserted, failed, err := svc.ComputeSymbol(context.Background(), "BBCA")

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, failed)
	require.Len(t, fundamentalsRepo.upserted, 1)

	record := fundamentalsRepo.upserted[0]
	assert.Equal(t, "BBCA", record.Symbol)
	assert.Equal(t, date(2024, time.March, 31), record.PeriodEnd)
	require.NotNil(t, record.BookValue)
	assert.Equal(t, 600.0, *record.BookValue)
	assert.Nil(t, record.Ebitda)
}

func TestComputeSymbolNoPeriodsIsNotAnError(t *testing.T) {
	fundamentalsRepo := &fakeFundamentalsRepo{}
	svc := NewComputeService(
		&config.Config{},
		testLogger(t),
		computeTestMapping(),
		&fakeTickersRepo{},
		&fakeStatementRepo{data: map[string]metrics.SymbolData{}},
		fundamentalsRepo,
		&fakeIngestionLogRepo{},
		nil,
	)

	inserted, failed, err := svc.ComputeSymbol(context.Background(), "EMPT")

	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, failed)
	assert.Empty(t, fundamentalsRepo.upserted)
}

func TestComputeAllTolerantOfSymbolFailures(t *testing.T) {
	statementRepo := &fakeStatementRepo{
		data: map[string]metrics.SymbolData{"BBCA": statementData("BBCA")},
		errs: map[string]error{"GOTO": errors.New("connection reset")},
	}
	ingestionLogRepo := &fakeIngestionLogRepo{}
	notifier := &fakeNotifier{}
	svc := NewComputeService(
		&config.Config{},
		testLogger(t),
		computeTestMapping(),
		&fakeTickersRepo{tickers: []entity.Ticker{{Symbol: "BBCA"}, {Symbol: "GOTO"}}},
		statementRepo,
		&fakeFundamentalsRepo{},
		ingestionLogRepo,
		notifier,
	)

	summary, err := svc.ComputeAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Symbols)
	assert.Equal(t, 1, summary.FailedSymbols)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 0, summary.Failed)

	require.Len(t, ingestionLogRepo.rows, 1)
	assert.Equal(t, entity.IngestionStatusPartial, ingestionLogRepo.rows[0].Status)
	assert.Len(t, notifier.messages, 1)
}

func TestComputeAllCountsUpsertFailures(t *testing.T) {
	svc := NewComputeService(
		&config.Config{},
		testLogger(t),
		computeTestMapping(),
		&fakeTickersRepo{tickers: []entity.Ticker{{Symbol: "BBCA"}}},
		&fakeStatementRepo{data: map[string]metrics.SymbolData{"BBCA": statementData("BBCA")}},
		&fakeFundamentalsRepo{upsertErr: errors.New("constraint violation")},
		&fakeIngestionLogRepo{},
		nil,
	)

	summary, err := svc.ComputeAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.FailedSymbols)
}

func TestComputeAllPropagatesTickerError(t *testing.T) {
	svc := NewComputeService(
		&config.Config{},
		testLogger(t),
		computeTestMapping(),
		&fakeTickersRepo{err: errors.New("db down")},
		&fakeStatementRepo{},
		&fakeFundamentalsRepo{},
		&fakeIngestionLogRepo{},
		nil,
	)

	_, err := svc.ComputeAll(context.Background())
	assert.Error(t, err)
}
