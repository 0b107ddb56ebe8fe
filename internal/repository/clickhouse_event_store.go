package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"PairSignal/internal/domain/models"
	applogger "PairSignal/pkg/logger"
)

const eventColumns = "as_of, symbol_a, symbol_b, tf, window_size, horizon, regression_threshold, distance_threshold, " +
	"kind, trigger_index, point_index, ts, entry_distance, exit_distance, resolution_offset"

const eventRow = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// CHEventStore implements EventStore for ClickHouse.
type CHEventStore struct {
	db        *sql.DB
	table     string
	chunkSize int
	l         *applogger.Logger
}

// NewCHEventStore writes events into table, a fully qualified "db.table" name.
func NewCHEventStore(db *sql.DB, table string) *CHEventStore {
	return &CHEventStore{db: db, table: table, chunkSize: 2000, l: applogger.Nop()}
}

// SetLogger injects a structured logger.
func (s *CHEventStore) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

// SaveEvents inserts the report's events using multi-row VALUES batches.
// A row is identified by pair, tf, run settings and the trigger bar time; the table keeps
// the row with the latest as_of, so reruns with the same settings collapse and runs with
// different settings never replace each other.
func (s *CHEventStore) SaveEvents(ctx context.Context, r *models.Report) error {
	if r == nil || len(r.Events) == 0 {
		return nil
	}
	start := time.Now()
	for lo := 0; lo < len(r.Events); lo += s.chunkSize {
		hi := min(lo+s.chunkSize, len(r.Events))

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*15)
		for _, e := range r.Events[lo:hi] {
			values = append(values, eventRow)
			args = append(args,
				r.AsOf,
				r.SymbolA,
				r.SymbolB,
				r.Timeframe,
				r.Config.Window,
				r.Config.Horizon,
				r.Config.RegressionThreshold,
				r.Config.DistanceThreshold,
				string(e.Kind),
				e.TriggerIndex,
				e.PointIndex,
				e.Time,
				e.EntryDistance,
				e.ExitDistance,
				e.ResolutionOffset,
			)
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, eventColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse save_events error",
				applogger.String("table", s.table),
				applogger.String("symbol_a", r.SymbolA),
				applogger.String("symbol_b", r.SymbolB),
				applogger.Int("rows", hi-lo),
				applogger.Error(err),
			)
			return fmt.Errorf("insert events: %w", err)
		}
	}
	s.l.Debug("clickhouse save_events ok",
		applogger.String("table", s.table),
		applogger.Int("rows", len(r.Events)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
