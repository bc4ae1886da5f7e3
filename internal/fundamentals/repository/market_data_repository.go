package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/config"
	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// MarketDataRepository is the acquisition boundary: it fetches raw statement
// line items and daily bars from the external market data provider. The rest
// of the system only ever sees the normalized payloads it returns.
type MarketDataRepository interface {
	GetStatements(ctx context.Context, symbol string) (*dto.ProviderStatements, error)
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) (*dto.ProviderHistory, error)
	GetCompanyInfo(ctx context.Context, symbol string) (*dto.ProviderInfo, error)
	GetRecommendations(ctx context.Context, symbol string) (*dto.ProviderRecommendations, error)
	GetSustainability(ctx context.Context, symbol string) (*dto.ProviderSustainability, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *gocache.Cache
}

func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	maxPerMinute := cfg.MarketData.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	perRequest := time.Minute / time.Duration(maxPerMinute)
	cacheTTL := cfg.MarketData.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(perRequest), 1),
		inmemoryCache:  gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (r *marketDataRepository) GetStatements(ctx context.Context, symbol string) (*dto.ProviderStatements, error) {
	cacheKey := "statements:" + symbol
	if cached, ok := r.inmemoryCache.Get(cacheKey); ok {
		return cached.(*dto.ProviderStatements), nil
	}

	url := fmt.Sprintf("%s/v1/statements/%s", r.cfg.MarketData.BaseURL, symbol)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var statements dto.ProviderStatements
	if err := json.Unmarshal(body, &statements); err != nil {
		return nil, fmt.Errorf("failed to decode statements for %s: %w", symbol, err)
	}

	r.inmemoryCache.Set(cacheKey, &statements, gocache.DefaultExpiration)
	return &statements, nil
}

func (r *marketDataRepository) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) (*dto.ProviderHistory, error) {
	url := fmt.Sprintf("%s/v1/history/%s?start=%s&end=%s",
		r.cfg.MarketData.BaseURL, symbol,
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var history dto.ProviderHistory
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("failed to decode history for %s: %w", symbol, err)
	}
	return &history, nil
}

func (r *marketDataRepository) GetCompanyInfo(ctx context.Context, symbol string) (*dto.ProviderInfo, error) {
	url := fmt.Sprintf("%s/v1/info/%s", r.cfg.MarketData.BaseURL, symbol)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var info dto.ProviderInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode info for %s: %w", symbol, err)
	}
	return &info, nil
}

func (r *marketDataRepository) GetRecommendations(ctx context.Context, symbol string) (*dto.ProviderRecommendations, error) {
	url := fmt.Sprintf("%s/v1/recommendations/%s", r.cfg.MarketData.BaseURL, symbol)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var recommendations dto.ProviderRecommendations
	if err := json.Unmarshal(body, &recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations for %s: %w", symbol, err)
	}
	return &recommendations, nil
}

func (r *marketDataRepository) GetSustainability(ctx context.Context, symbol string) (*dto.ProviderSustainability, error) {
	url := fmt.Sprintf("%s/v1/sustainability/%s", r.cfg.MarketData.BaseURL, symbol)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var sustainability dto.ProviderSustainability
	if err := json.Unmarshal(body, &sustainability); err != nil {
		return nil, fmt.Errorf("failed to decode sustainability for %s: %w", symbol, err)
	}
	return &sustainability, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		r.log.DebugContext(ctx, "Provider request failed",
			logger.StringField("url", url),
			logger.IntField("status", resp.StatusCode))
		return nil, fmt.Errorf("provider returned status %d for %s", resp.StatusCode, url)
	}

	return body, nil
}
