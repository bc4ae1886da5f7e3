package config

import (
	"time"

	"golang-stock-fundamentals/pkg/config"
)

// Compute holds derivation run configuration.
type Compute struct {
	MappingFile string `mapstructure:"mapping_file"`
	Cron        string `mapstructure:"cron"`
}

// Report holds completeness report configuration.
type Report struct {
	Cron       string        `mapstructure:"cron"`
	WindowDays int           `mapstructure:"window_days"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// MarketData holds the configuration for the market data provider API.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	HistoryYears        int           `mapstructure:"history_years"`
}

// Telegram holds configuration for the run-summary notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the fundamentals service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Compute    Compute         `mapstructure:"compute"`
	Report     Report          `mapstructure:"report"`
	MarketData MarketData      `mapstructure:"market_data"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the fundamentals service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
