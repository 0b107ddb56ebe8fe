package repository

import (
	"context"
	"time"

	"PairSignal/internal/domain/models"
)

// BarProvider supplies read-only candles per instrument and timeframe.
type BarProvider interface {
	GetCandles(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Candle, error)
	GetLatestNCandles(ctx context.Context, symbol string, n int, tf Timeframe) ([]models.Candle, error)
}

// EventStore persists labeled events of a run.
type EventStore interface {
	SaveEvents(ctx context.Context, report *models.Report) error
}

// ReportPublisher fans a finished report out to downstream consumers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *models.Report) error
	Close() error
}

// ReportCache stores finished reports by key.
type ReportCache interface {
	Get(ctx context.Context, key string) (*models.Report, bool, error)
	Set(ctx context.Context, key string, report *models.Report, ttl time.Duration) error
}

type Metrics interface {
	RecordRun(pair string, status string)
	RecordEvents(pair string, wins, losses int)
	RecordInvalidWindows(pair string, n int)
	RecordZeroCrossingRate(pair string, zcr float64)
	RecordLatency(op string, seconds float64)
	RecordError(kind string)
}
