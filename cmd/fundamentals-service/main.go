package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/config"
	delivery "golang-stock-fundamentals/internal/fundamentals/delivery/http"
	"golang-stock-fundamentals/internal/fundamentals/metrics"
	"golang-stock-fundamentals/internal/fundamentals/repository"
	"golang-stock-fundamentals/internal/fundamentals/service"
	"golang-stock-fundamentals/pkg/logger"
	"golang-stock-fundamentals/pkg/postgres"
	"golang-stock-fundamentals/pkg/redis"
	"golang-stock-fundamentals/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

// app bundles the wired-up services so the serve and one-shot commands share
// the same initialization path.
type app struct {
	cfg         *config.Config
	logger      *logger.Logger
	redisClient *redis.Client
	computeSvc  service.ComputeService
	ingestSvc   service.IngestService
	completeSvc service.CompletenessService
	closeDB     func()
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		LogLevel:        cfg.Database.LogLevel,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	mapping, err := metrics.LoadMapping(cfg.Compute.MappingFile)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("failed to load variable mapping: %w", err)
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Failed to initialize Telegram notifier, continuing without it", logger.ErrorField(err))
			notifier = nil
		}
	}

	tickersRepo := repository.NewTickersRepository(db.DB)
	statementRepo := repository.NewStatementRepository(db.DB)
	fundamentalsRepo := repository.NewFundamentalsRepository(db.DB)
	priceHistoryRepo := repository.NewPriceHistoryRepository(db.DB)
	sustainabilityRepo := repository.NewSustainabilityRepository(db.DB)
	recommendationsRepo := repository.NewRecommendationsRepository(db.DB)
	ingestionLogRepo := repository.NewIngestionLogRepository(db.DB)
	marketDataRepo := repository.NewMarketDataRepository(cfg, appLogger)
	reportCacheRepo := repository.NewReportCacheRepository(redisClient.Client, cfg.Report.CacheTTL)

	computeSvc := service.NewComputeService(cfg, appLogger, mapping, tickersRepo, statementRepo, fundamentalsRepo, ingestionLogRepo, notifier)
	ingestSvc := service.NewIngestService(cfg, appLogger, marketDataRepo, tickersRepo, statementRepo, priceHistoryRepo, fundamentalsRepo, recommendationsRepo, sustainabilityRepo, ingestionLogRepo)
	completeSvc := service.NewCompletenessService(cfg, appLogger, reportCacheRepo, tickersRepo, statementRepo, fundamentalsRepo, priceHistoryRepo, sustainabilityRepo, recommendationsRepo)

	return &app{
		cfg:         cfg,
		logger:      appLogger,
		redisClient: redisClient,
		computeSvc:  computeSvc,
		ingestSvc:   ingestSvc,
		completeSvc: completeSvc,
		closeDB:     closeDB,
	}, nil
}

func (a *app) close() {
	a.closeDB()
	_ = a.redisClient.Close()
	_ = a.logger.Sync()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the fundamentals service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.close()

	a.logger.Info("Starting Fundamentals Service", logger.Field("name", a.cfg.App.Name))

	// Scheduled runs
	scheduler := cron.New()
	if spec := a.cfg.Compute.Cron; spec != "" {
		if _, err := scheduler.AddFunc(spec, func() {
			if _, err := a.computeSvc.ComputeAll(ctx); err != nil {
				a.logger.Error("Scheduled compute run failed", logger.ErrorField(err))
			}
		}); err != nil {
			a.logger.Fatal("Invalid compute cron expression", logger.ErrorField(err))
		}
	}
	if spec := a.cfg.Report.Cron; spec != "" {
		if _, err := scheduler.AddFunc(spec, func() {
			if _, err := a.completeSvc.RefreshLatest(ctx); err != nil {
				a.logger.Error("Scheduled completeness report failed", logger.ErrorField(err))
			}
		}); err != nil {
			a.logger.Fatal("Invalid report cron expression", logger.ErrorField(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	apiV1 := e.Group("/api/v1")

	reportHandler := delivery.NewReportHandler(a.completeSvc, a.logger, a.cfg.Report.WindowDays)
	reportsGroup := apiV1.Group("/reports")
	reportHandler.RegisterRoutes(reportsGroup)

	runHandler := delivery.NewRunHandler(a.computeSvc, a.ingestSvc, a.logger)
	runsGroup := apiV1.Group("/runs")
	runHandler.RegisterRoutes(runsGroup)

	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.API.Port)
		a.logger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	a.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	a.logger.Info("Server exiting")
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Runs one derivation pass over all active symbols and exits",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer a.close()

		if _, err := a.computeSvc.ComputeAll(context.Background()); err != nil {
			a.logger.Fatal("Compute run failed", logger.ErrorField(err))
		}
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Runs one ingestion pass over all active symbols and exits",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer a.close()

		if _, err := a.ingestSvc.IngestAll(context.Background()); err != nil {
			a.logger.Fatal("Ingestion run failed", logger.ErrorField(err))
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates one completeness report and exits",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer a.close()

		report, err := a.completeSvc.RefreshLatest(context.Background())
		if err != nil {
			a.logger.Fatal("Completeness report failed", logger.ErrorField(err))
		}
		a.logger.Info("Completeness report generated",
			logger.IntField("symbols", len(report.Rows)),
			logger.IntField("tables", len(report.Tables)))
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "fundamentals-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-fundamentals.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, computeCmd, ingestCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing fundamentals-service CLI: %s\n", err)
		os.Exit(1)
	}
}
