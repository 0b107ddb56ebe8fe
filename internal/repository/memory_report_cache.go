package repository

import (
	"context"
	"time"

	"PairSignal/internal/domain/models"
	icache "PairSignal/internal/service/cache"
)

// MemoryReportCache implements ReportCache in process, for deployments without Redis.
// Cached reports are shared; callers must not mutate them.
type MemoryReportCache struct {
	c *icache.TTLCache[*models.Report]
}

func NewMemoryReportCache(maxEntries int) *MemoryReportCache {
	return &MemoryReportCache{c: icache.NewTTLCache[*models.Report](maxEntries)}
}

func (m *MemoryReportCache) Get(_ context.Context, key string) (*models.Report, bool, error) {
	r, ok := m.c.Get(key)
	return r, ok, nil
}

func (m *MemoryReportCache) Set(_ context.Context, key string, r *models.Report, ttl time.Duration) error {
	if r == nil || ttl <= 0 {
		return nil
	}
	m.c.Set(key, r, ttl)
	return nil
}
