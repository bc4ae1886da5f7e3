package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-stock-fundamentals/internal/entity"
	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/internal/fundamentals/repository"
	"golang-stock-fundamentals/pkg/common"
	"golang-stock-fundamentals/pkg/logger"
	"golang-stock-fundamentals/pkg/utils"

	"gorm.io/datatypes"
)

// statementTypeTables maps provider statement types to their line-item
// tables. Unknown types are skipped and counted as failures.
var statementTypeTables = map[string]string{
	"balance_sheet": common.TableBalanceSheet,
	"financials":    common.TableFinancials,
	"earnings":      common.TableEarnings,
	"cash_flow":     common.TableCashFlow,
}

// IngestService pulls raw data from the market data provider into the
// backing store.
type IngestService interface {
	IngestAll(ctx context.Context) (*dto.IngestRunSummary, error)
}

func NewIngestService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
	tickersRepo repository.TickersRepository,
	statementRepo repository.StatementRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	fundamentalsRepo repository.FundamentalsRepository,
	recommendationsRepo repository.RecommendationsRepository,
	sustainabilityRepo repository.SustainabilityRepository,
	ingestionLogRepo repository.IngestionLogRepository,
) IngestService {
	return &ingestService{
		cfg:                 cfg,
		logger:              log,
		marketDataRepo:      marketDataRepo,
		tickersRepo:         tickersRepo,
		statementRepo:       statementRepo,
		priceHistoryRepo:    priceHistoryRepo,
		fundamentalsRepo:    fundamentalsRepo,
		recommendationsRepo: recommendationsRepo,
		sustainabilityRepo:  sustainabilityRepo,
		ingestionLogRepo:    ingestionLogRepo,
	}
}

type ingestService struct {
	cfg                 *config.Config
	logger              *logger.Logger
	marketDataRepo      repository.MarketDataRepository
	tickersRepo         repository.TickersRepository
	statementRepo       repository.StatementRepository
	priceHistoryRepo    repository.PriceHistoryRepository
	fundamentalsRepo    repository.FundamentalsRepository
	recommendationsRepo repository.RecommendationsRepository
	sustainabilityRepo  repository.SustainabilityRepository
	ingestionLogRepo    repository.IngestionLogRepository
}

// IngestAll fetches and stores price history and statement line items for
// every active symbol. A provider failure on one symbol never aborts the run.
func (s *ingestService) IngestAll(ctx context.Context) (*dto.IngestRunSummary, error) {
	summary := &dto.IngestRunSummary{StartedAt: time.Now()}

	tickers, err := s.tickersRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	summary.Symbols = len(tickers)

	historyYears := s.cfg.MarketData.HistoryYears
	if historyYears <= 0 {
		historyYears = 10
	}
	end := utils.DateOnly(time.Now())
	start := end.AddDate(-historyYears, 0, 0)

	for _, ticker := range tickers {
		priceCount, priceErr := s.ingestPriceHistory(ctx, ticker.Symbol, start, end)
		stmtCount, stmtErr := s.ingestStatements(ctx, ticker.Symbol)
		infoCount, infoErr := s.ingestCompanyInfo(ctx, ticker.Symbol)
		recCount, recErr := s.ingestRecommendations(ctx, ticker.Symbol)
		esgCount, esgErr := s.ingestSustainability(ctx, ticker.Symbol)

		summary.PriceRecords += priceCount
		summary.StatementRecords += stmtCount
		summary.InfoRecords += infoCount
		summary.RecommendationRecords += recCount
		summary.SustainabilityRecords += esgCount
		if priceErr != nil || stmtErr != nil || infoErr != nil || recErr != nil || esgErr != nil {
			summary.FailedSymbols++
		}
	}

	summary.FinishedAt = time.Now()
	s.logger.Info("Ingestion run finished",
		logger.IntField("symbols", summary.Symbols),
		logger.IntField("failed_symbols", summary.FailedSymbols),
		logger.IntField("price_records", summary.PriceRecords),
		logger.IntField("statement_records", summary.StatementRecords),
		logger.IntField("info_records", summary.InfoRecords),
		logger.IntField("recommendation_records", summary.RecommendationRecords),
		logger.IntField("sustainability_records", summary.SustainabilityRecords))

	return summary, nil
}

func (s *ingestService) ingestPriceHistory(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	history, err := s.marketDataRepo.GetDailyBars(ctx, symbol, start, end)
	if err != nil {
		s.logger.Error("Failed to fetch price history", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TablePriceHistory, 0, 0, err)
		return 0, err
	}

	bars := make([]entity.PriceBar, 0, len(history.Bars))
	skipped := 0
	for _, bar := range history.Bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil || bar.Close == nil {
			skipped++
			continue
		}
		bars = append(bars, entity.PriceBar{
			Symbol:    symbol,
			Date:      date,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
			Dividends: bar.Dividends,
			Splits:    bar.Splits,
		})
	}

	if err := s.priceHistoryRepo.UpsertBars(ctx, bars); err != nil {
		s.logger.Error("Failed to store price history", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TablePriceHistory, len(history.Bars), 0, err)
		return 0, err
	}

	s.recordIngestion(ctx, symbol, common.TablePriceHistory, len(history.Bars), len(bars), nil)
	if skipped > 0 {
		s.logger.Debug("Skipped malformed price bars",
			logger.StringField("symbol", symbol),
			logger.IntField("skipped", skipped))
	}
	return len(bars), nil
}

func (s *ingestService) ingestStatements(ctx context.Context, symbol string) (int, error) {
	statements, err := s.marketDataRepo.GetStatements(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to fetch statements", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, "financial_statements", 0, 0, err)
		return 0, err
	}

	byTable := make(map[string][]entity.LineItem)
	skipped := 0
	for _, item := range statements.Items {
		table, ok := statementTypeTables[item.StatementType]
		if !ok {
			skipped++
			continue
		}
		periodEnd, err := time.Parse("2006-01-02", item.PeriodEnd)
		if err != nil || item.LineItem == "" || item.Value == nil {
			skipped++
			continue
		}
		// The provider reports only the period end; the start is synthesized
		// one year back per the reporting convention.
		byTable[table] = append(byTable[table], entity.LineItem{
			Symbol:      symbol,
			LineItem:    item.LineItem,
			Value:       item.Value,
			PeriodStart: utils.PeriodStartFromEnd(periodEnd),
			PeriodEnd:   utils.DateOnly(periodEnd),
		})
	}

	stored := 0
	var firstErr error
	for table, items := range byTable {
		if err := s.statementRepo.UpsertLineItems(ctx, table, items); err != nil {
			s.logger.Error("Failed to store line items",
				logger.ErrorField(err),
				logger.StringField("symbol", symbol),
				logger.StringField("table", table))
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to store %s for %s: %w", table, symbol, err)
			}
			continue
		}
		stored += len(items)
	}

	s.recordIngestion(ctx, symbol, "financial_statements", len(statements.Items), stored, firstErr)
	if skipped > 0 {
		s.logger.Debug("Skipped malformed statement rows",
			logger.StringField("symbol", symbol),
			logger.IntField("skipped", skipped))
	}
	return stored, firstErr
}

// ingestCompanyInfo attaches the provider's company snapshot to the
// fundamentals row of the current fiscal period. Only the info columns are
// written; derived metrics stay untouched.
func (s *ingestService) ingestCompanyInfo(ctx context.Context, symbol string) (int, error) {
	info, err := s.marketDataRepo.GetCompanyInfo(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to fetch company info", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.DataTypeCompanyInfo, 0, 0, err)
		return 0, err
	}

	if info.MarketCap == nil && info.RevenueGrowth == nil {
		s.recordIngestion(ctx, symbol, common.DataTypeCompanyInfo, 1, 0, nil)
		return 0, nil
	}

	periodStart, periodEnd := utils.FiscalYearBounds(time.Now())
	record := &entity.Fundamental{
		Symbol:        symbol,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		MarketCap:     info.MarketCap,
		RevenueGrowth: info.RevenueGrowth,
	}
	if err := s.fundamentalsRepo.UpsertCompanyInfo(ctx, record); err != nil {
		s.logger.Error("Failed to store company info", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.DataTypeCompanyInfo, 1, 0, err)
		return 0, err
	}

	s.recordIngestion(ctx, symbol, common.DataTypeCompanyInfo, 1, 1, nil)
	return 1, nil
}

func (s *ingestService) ingestRecommendations(ctx context.Context, symbol string) (int, error) {
	recommendations, err := s.marketDataRepo.GetRecommendations(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to fetch recommendations", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TableRecommendations, 0, 0, err)
		return 0, err
	}

	now := time.Now()
	rows := make([]entity.Recommendation, 0, len(recommendations.Rows))
	skipped := 0
	for _, row := range recommendations.Rows {
		offset, err := parseMonthOffset(row.Period)
		if err != nil {
			skipped++
			continue
		}
		periodStart, periodEnd := utils.RelativeMonthBounds(now, offset)
		rows = append(rows, entity.Recommendation{
			Symbol:      symbol,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			StrongBuy:   row.StrongBuy,
			Buy:         row.Buy,
			Hold:        row.Hold,
			Sell:        row.Sell,
			StrongSell:  row.StrongSell,
		})
	}

	if err := s.recommendationsRepo.Upsert(ctx, rows); err != nil {
		s.logger.Error("Failed to store recommendations", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TableRecommendations, len(recommendations.Rows), 0, err)
		return 0, err
	}

	s.recordIngestion(ctx, symbol, common.TableRecommendations, len(recommendations.Rows), len(rows), nil)
	if skipped > 0 {
		s.logger.Debug("Skipped recommendation rows with invalid periods",
			logger.StringField("symbol", symbol),
			logger.IntField("skipped", skipped))
	}
	return len(rows), nil
}

func (s *ingestService) ingestSustainability(ctx context.Context, symbol string) (int, error) {
	sustainability, err := s.marketDataRepo.GetSustainability(ctx, symbol)
	if err != nil {
		s.logger.Error("Failed to fetch sustainability scores", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TableSustainability, 0, 0, err)
		return 0, err
	}

	if sustainability.TotalEsg == nil && sustainability.EnvironmentScore == nil &&
		sustainability.SocialScore == nil && sustainability.GovernanceScore == nil {
		s.recordIngestion(ctx, symbol, common.TableSustainability, 1, 0, nil)
		return 0, nil
	}

	score := entity.SustainabilityScore{
		Symbol:           symbol,
		AsOf:             utils.DateOnly(time.Now()),
		TotalEsg:         sustainability.TotalEsg,
		EnvironmentScore: sustainability.EnvironmentScore,
		SocialScore:      sustainability.SocialScore,
		GovernanceScore:  sustainability.GovernanceScore,
	}
	if err := s.sustainabilityRepo.Upsert(ctx, []entity.SustainabilityScore{score}); err != nil {
		s.logger.Error("Failed to store sustainability scores", logger.ErrorField(err), logger.StringField("symbol", symbol))
		s.recordIngestion(ctx, symbol, common.TableSustainability, 1, 0, err)
		return 0, err
	}

	s.recordIngestion(ctx, symbol, common.TableSustainability, 1, 1, nil)
	return 1, nil
}

// parseMonthOffset parses the provider's relative period notation ("0m",
// "-1m") into a month offset.
func parseMonthOffset(period string) (int, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(period), "m")
	if trimmed == period {
		return 0, fmt.Errorf("invalid period %q", period)
	}
	offset, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return offset, nil
}

func (s *ingestService) recordIngestion(ctx context.Context, symbol, dataType string, processed, successful int, runErr error) {
	status := entity.IngestionStatusSuccess
	errorMessage := sql.NullString{}
	if runErr != nil {
		status = entity.IngestionStatusFailed
		errorMessage = sql.NullString{String: runErr.Error(), Valid: true}
	} else if successful < processed {
		status = entity.IngestionStatusPartial
	}

	details, _ := json.Marshal(map[string]int{
		"processed":  processed,
		"successful": successful,
		"failed":     processed - successful,
	})

	logRow := &entity.DataIngestionLog{
		Symbol:            symbol,
		DataType:          dataType,
		RecordsProcessed:  processed,
		RecordsSuccessful: successful,
		RecordsFailed:     processed - successful,
		Status:            status,
		ErrorMessage:      errorMessage,
		Details:           datatypes.JSON(details),
	}
	if err := s.ingestionLogRepo.Create(ctx, logRow); err != nil {
		s.logger.Warn("Failed to write ingestion log", logger.ErrorField(err), logger.StringField("symbol", symbol))
	}
}
