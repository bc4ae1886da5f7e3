package service

import (
	"context"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/internal/fundamentals/repository"
	"golang-stock-fundamentals/pkg/common"
	"golang-stock-fundamentals/pkg/logger"
)

// CompletenessService computes the per-symbol, per-table completeness report
// over a caller-specified date window. Each run is a full recomputation.
// Only RefreshLatest publishes to the latest-report cache; ad-hoc windows
// never replace the scheduled report.
type CompletenessService interface {
	GenerateReport(ctx context.Context, start, end time.Time) (*dto.CompletenessReport, error)
	RefreshLatest(ctx context.Context) (*dto.CompletenessReport, error)
	LatestReport(ctx context.Context) (*dto.CompletenessReport, error)
}

// NewCompletenessService creates a new completeness service. The report cache
// may be nil; the latest-report cache is then disabled.
func NewCompletenessService(
	cfg *config.Config,
	log *logger.Logger,
	reportCache repository.ReportCacheRepository,
	tickersRepo repository.TickersRepository,
	statementRepo repository.StatementRepository,
	fundamentalsRepo repository.FundamentalsRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	sustainabilityRepo repository.SustainabilityRepository,
	recommendationsRepo repository.RecommendationsRepository,
) CompletenessService {
	return &completenessService{
		cfg:                 cfg,
		logger:              log,
		reportCache:         reportCache,
		tickersRepo:         tickersRepo,
		statementRepo:       statementRepo,
		fundamentalsRepo:    fundamentalsRepo,
		priceHistoryRepo:    priceHistoryRepo,
		sustainabilityRepo:  sustainabilityRepo,
		recommendationsRepo: recommendationsRepo,
	}
}

type completenessService struct {
	cfg                 *config.Config
	logger              *logger.Logger
	reportCache         repository.ReportCacheRepository
	tickersRepo         repository.TickersRepository
	statementRepo       repository.StatementRepository
	fundamentalsRepo    repository.FundamentalsRepository
	priceHistoryRepo    repository.PriceHistoryRepository
	sustainabilityRepo  repository.SustainabilityRepository
	recommendationsRepo repository.RecommendationsRepository
}

func (s *completenessService) GenerateReport(ctx context.Context, start, end time.Time) (*dto.CompletenessReport, error) {
	tickers, err := s.tickersRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	valid := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		valid[t.Symbol] = struct{}{}
	}

	s.logger.Info("Generating completeness report",
		logger.IntField("symbols", len(valid)),
		logger.StringField("start_date", start.Format("2006-01-02")),
		logger.StringField("end_date", end.Format("2006-01-02")))

	var entries []metrics.Entry

	for _, table := range common.StatementTables {
		periods, err := s.statementRepo.GetReportedPeriods(ctx, table, common.CompletenessFields[table], start, end)
		if err != nil {
			return nil, err
		}
		entries = append(entries, metrics.ScorePeriodic(table, filterPeriods(periods, valid), start, end)...)
	}

	fundamentalPeriods, err := s.fundamentalsRepo.GetReportedPeriods(ctx, common.CompletenessFields[common.TableFundamentals], start, end)
	if err != nil {
		return nil, err
	}
	entries = append(entries, metrics.ScorePeriodic(common.TableFundamentals, filterPeriods(fundamentalPeriods, valid), start, end)...)

	dates, err := s.priceHistoryRepo.GetDates(ctx, start, end)
	if err != nil {
		return nil, err
	}
	entries = append(entries, metrics.ScoreDaily(common.TablePriceHistory, filterDates(dates, valid), start, end)...)

	sustainabilitySymbols, err := s.sustainabilityRepo.GetSymbolsWithData(ctx, start, end)
	if err != nil {
		return nil, err
	}
	entries = append(entries, metrics.ScoreSnapshot(common.TableSustainability, filterSymbols(sustainabilitySymbols, valid))...)

	recommendationSymbols, err := s.recommendationsRepo.GetSymbolsWithData(ctx, start, end)
	if err != nil {
		return nil, err
	}
	entries = append(entries, metrics.ScoreSnapshot(common.TableRecommendations, filterSymbols(recommendationSymbols, valid))...)

	return &dto.CompletenessReport{
		GeneratedAt: time.Now(),
		StartDate:   start,
		EndDate:     end,
		Tables:      common.CompletenessTables,
		Rows:        metrics.Pivot(entries, common.CompletenessTables),
	}, nil
}

// RefreshLatest recomputes the report over the configured default window and
// publishes it as the latest report.
func (s *completenessService) RefreshLatest(ctx context.Context) (*dto.CompletenessReport, error) {
	windowDays := s.cfg.Report.WindowDays
	if windowDays <= 0 {
		windowDays = 365
	}
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	report, err := s.GenerateReport(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		if err := s.reportCache.SetLatest(ctx, report); err != nil {
			s.logger.Warn("Failed to cache completeness report", logger.ErrorField(err))
		}
	}
	return report, nil
}

// LatestReport returns the most recently published report, or nil when none
// is cached.
func (s *completenessService) LatestReport(ctx context.Context) (*dto.CompletenessReport, error) {
	if s.reportCache == nil {
		return nil, nil
	}
	return s.reportCache.GetLatest(ctx)
}

func filterPeriods(periods map[string][]metrics.Period, valid map[string]struct{}) map[string][]metrics.Period {
	for symbol := range periods {
		if _, ok := valid[symbol]; !ok {
			delete(periods, symbol)
		}
	}
	return periods
}

func filterDates(dates map[string][]time.Time, valid map[string]struct{}) map[string][]time.Time {
	for symbol := range dates {
		if _, ok := valid[symbol]; !ok {
			delete(dates, symbol)
		}
	}
	return dates
}

func filterSymbols(symbols []string, valid map[string]struct{}) []string {
	filtered := symbols[:0]
	for _, symbol := range symbols {
		if _, ok := valid[symbol]; ok {
			filtered = append(filtered, symbol)
		}
	}
	return filtered
}
