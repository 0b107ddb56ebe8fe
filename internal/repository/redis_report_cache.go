package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PairSignal/internal/domain/models"
	"PairSignal/pkg/cache"
)

// RedisReportCache implements ReportCache on top of a cache store.
type RedisReportCache struct {
	svc cache.Store
}

func NewRedisReportCache(svc cache.Store) *RedisReportCache {
	return &RedisReportCache{svc: svc}
}

// Get reports (nil, false, nil) on a miss.
func (c *RedisReportCache) Get(ctx context.Context, key string) (*models.Report, bool, error) {
	var r models.Report
	if err := c.svc.Get(ctx, key, &r); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return &r, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, r *models.Report, ttl time.Duration) error {
	if r == nil || ttl <= 0 {
		return nil
	}
	if err := c.svc.Set(ctx, key, r, ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
