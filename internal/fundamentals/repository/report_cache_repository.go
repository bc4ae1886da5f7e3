package repository

import (
	"context"
	"encoding/json"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/dto"
	"golang-stock-fundamentals/pkg/common"

	"github.com/redis/go-redis/v9"
)

// ReportCacheRepository stores the latest scheduled completeness report.
type ReportCacheRepository interface {
	GetLatest(ctx context.Context) (*dto.CompletenessReport, error)
	SetLatest(ctx context.Context, report *dto.CompletenessReport) error
}

type reportCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCacheRepository(client *redis.Client, ttl time.Duration) ReportCacheRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &reportCacheRepository{client: client, ttl: ttl}
}

// GetLatest returns the cached report, or nil when none is cached.
func (r *reportCacheRepository) GetLatest(ctx context.Context) (*dto.CompletenessReport, error) {
	payload, err := r.client.Get(ctx, common.RedisKeyCompletenessReport).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var report dto.CompletenessReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportCacheRepository) SetLatest(ctx context.Context, report *dto.CompletenessReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, common.RedisKeyCompletenessReport, payload, r.ttl).Err()
}
