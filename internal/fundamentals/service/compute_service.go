package service

import (
	"context"
	"encoding/json"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/internal/fundamentals/repository"
	"golang-stock-fundamentals/pkg/common"
	"golang-stock-fundamentals/pkg/logger"
	"golang-stock-fundamentals/pkg/telegram"

	"gorm.io/datatypes"
)

// ComputeService runs the derivation engine over the tracked universe.
type ComputeService interface {
	ComputeAll(ctx context.Context) (*dto.ComputeRunSummary, error)
	ComputeSymbol(ctx context.Context, symbol string) (inserted, failed int, err error)
}

// NewComputeService creates a new compute service. The mapping is loaded once
// at startup and passed in; a notifier may be nil when notifications are
// disabled.
func NewComputeService(
	cfg *config.Config,
	log *logger.Logger,
	mapping metrics.Mapping,
	tickersRepo repository.TickersRepository,
	statementRepo repository.StatementRepository,
	fundamentalsRepo repository.FundamentalsRepository,
	ingestionLogRepo repository.IngestionLogRepository,
	notifier telegram.Notifier,
) ComputeService {
	return &computeService{
		cfg:              cfg,
		logger:           log,
		mapping:          mapping,
		tickersRepo:      tickersRepo,
		statementRepo:    statementRepo,
		fundamentalsRepo: fundamentalsRepo,
		ingestionLogRepo: ingestionLogRepo,
		notifier:         notifier,
	}
}

type computeService struct {
	cfg              *config.Config
	logger           *logger.Logger
	mapping          metrics.Mapping
	tickersRepo      repository.TickersRepository
	statementRepo    repository.StatementRepository
	fundamentalsRepo repository.FundamentalsRepository
	ingestionLogRepo repository.IngestionLogRepository
	notifier         telegram.Notifier
}

// ComputeAll derives metrics for every active symbol. A failure on one
// symbol or period never aborts the run; the summary carries the counts.
func (s *computeService) ComputeAll(ctx context.Context) (*dto.ComputeRunSummary, error) {
	summary := &dto.ComputeRunSummary{StartedAt: time.Now()}

	tickers, err := s.tickersRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	summary.Symbols = len(tickers)

	s.logger.Info("Starting fundamentals computation", logger.IntField("symbols", len(tickers)))

	for _, ticker := range tickers {
		inserted, failed, err := s.ComputeSymbol(ctx, ticker.Symbol)
		if err != nil {
			s.logger.Error("Failed to compute symbol",
				logger.ErrorField(err),
				logger.StringField("symbol", ticker.Symbol))
			summary.FailedSymbols++
			continue
		}
		if inserted == 0 && failed == 0 {
			summary.Skipped++
		}
		summary.Inserted += inserted
		summary.Failed += failed
		summary.Periods += inserted + failed
	}

	summary.FinishedAt = time.Now()
	s.recordRun(ctx, summary)

	s.logger.Info("Fundamentals computation finished",
		logger.IntField("symbols", summary.Symbols),
		logger.IntField("periods", summary.Periods),
		logger.IntField("inserted", summary.Inserted),
		logger.IntField("skipped", summary.Skipped),
		logger.IntField("failed", summary.Failed))

	if s.notifier != nil {
		if err := s.notifier.SendMessage(telegram.FormatComputeRunSummary(summary)); err != nil {
			s.logger.Warn("Failed to send run summary notification", logger.ErrorField(err))
		}
	}

	return summary, nil
}

// ComputeSymbol derives one record per reporting period discovered in the
// symbol's balance sheet data and upserts each keyed on (symbol, period_end).
func (s *computeService) ComputeSymbol(ctx context.Context, symbol string) (inserted, failed int, err error) {
	symbolData, err := s.statementRepo.GetSymbolData(ctx, symbol)
	if err != nil {
		return 0, 0, err
	}

	periods := metrics.DiscoverPeriods(symbolData[common.TableBalanceSheet])
	if len(periods) == 0 {
		s.logger.Debug("No reporting periods found", logger.StringField("symbol", symbol))
		return 0, 0, nil
	}

	for _, period := range periods {
		fundamental := metrics.Derive(symbol, period.Start, period.End, symbolData, s.mapping)

		filled, total := metrics.Coverage(fundamental)
		s.logger.Info("Derived fundamentals record",
			logger.StringField("symbol", symbol),
			logger.StringField("period_start", period.Start.Format("2006-01-02")),
			logger.StringField("period_end", period.End.Format("2006-01-02")),
			logger.IntField("filled", filled),
			logger.IntField("total", total),
			logger.Float64Field("fill_pct", metrics.Pct(filled, total)))

		if err := s.fundamentalsRepo.Upsert(ctx, fundamental); err != nil {
			s.logger.Error("Failed to upsert fundamentals record",
				logger.ErrorField(err),
				logger.StringField("symbol", symbol),
				logger.StringField("period_end", period.End.Format("2006-01-02")))
			failed++
			continue
		}
		inserted++
	}

	return inserted, failed, nil
}

func (s *computeService) recordRun(ctx context.Context, summary *dto.ComputeRunSummary) {
	details, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("Failed to marshal run summary", logger.ErrorField(err))
		details = nil
	}

	status := entity.IngestionStatusSuccess
	if summary.Failed > 0 || summary.FailedSymbols > 0 {
		status = entity.IngestionStatusPartial
	}

	logRow := &entity.DataIngestionLog{
		Symbol:            "ALL",
		DataType:          common.TableFundamentals,
		RecordsProcessed:  summary.Periods,
		RecordsSuccessful: summary.Inserted,
		RecordsFailed:     summary.Failed,
		Status:            status,
		Details:           datatypes.JSON(details),
	}
	if err := s.ingestionLogRepo.Create(ctx, logRow); err != nil {
		s.logger.Warn("Failed to record run in ingestion log", logger.ErrorField(err))
	}
}
