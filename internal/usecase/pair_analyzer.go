package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"PairSignal/internal/domain/models"
	domrepo "PairSignal/internal/domain/repository"
	"PairSignal/internal/services/features"
	"PairSignal/internal/services/pairs"
	"PairSignal/pkg/cache"
	applogger "PairSignal/pkg/logger"
)

// PairAnalyzer fetches both legs of a pair, runs the signal pipeline and fans the report out.
type PairAnalyzer struct {
	bars     domrepo.BarProvider
	events   domrepo.EventStore
	pub      domrepo.ReportPublisher
	cache    domrepo.ReportCache
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	timeout  time.Duration
	l        *applogger.Logger
}

// AnalyzerOption configures PairAnalyzer.
type AnalyzerOption func(*PairAnalyzer)

func WithEventStore(s domrepo.EventStore) AnalyzerOption {
	return func(a *PairAnalyzer) { a.events = s }
}

func WithPublisher(p domrepo.ReportPublisher) AnalyzerOption {
	return func(a *PairAnalyzer) { a.pub = p }
}

// WithReportCache enables caching of reports for ttl.
func WithReportCache(c domrepo.ReportCache, ttl time.Duration) AnalyzerOption {
	return func(a *PairAnalyzer) {
		a.cache = c
		a.cacheTTL = ttl
	}
}

func WithMetrics(m domrepo.Metrics) AnalyzerOption {
	return func(a *PairAnalyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithTimeout bounds one Analyze call; zero disables the bound.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *PairAnalyzer) { a.timeout = d }
}

func WithLogger(l *applogger.Logger) AnalyzerOption {
	return func(a *PairAnalyzer) {
		if l != nil {
			a.l = l
		}
	}
}

func NewPairAnalyzer(bars domrepo.BarProvider, opts ...AnalyzerOption) *PairAnalyzer {
	a := &PairAnalyzer{
		bars:    bars,
		metrics: nopMetrics{},
		timeout: 30 * time.Second,
		l:       applogger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeParams selects the pair and bars to analyze.
// With From and To set the bars in [From, To] are used; otherwise the latest N.
type AnalyzeParams struct {
	SymbolA   string
	SymbolB   string
	Timeframe domrepo.Timeframe
	N         int
	From      time.Time
	To        time.Time
	Config    pairs.Config
	NoCache   bool
}

func (p AnalyzeParams) ranged() bool { return !p.From.IsZero() || !p.To.IsZero() }

func (p AnalyzeParams) validate() error {
	switch {
	case p.SymbolA == "":
		return &pairs.ValidationError{Field: "symbol_a", Reason: "required"}
	case p.SymbolB == "":
		return &pairs.ValidationError{Field: "symbol_b", Reason: "required"}
	case p.SymbolA == p.SymbolB:
		return &pairs.ValidationError{Field: "symbol_b", Reason: "must differ from symbol_a"}
	case !domrepo.IsValidTimeframe(p.Timeframe):
		return &pairs.ValidationError{Field: "tf", Reason: fmt.Sprintf("unsupported timeframe %q", p.Timeframe)}
	}
	if p.ranged() {
		if p.From.IsZero() || p.To.IsZero() {
			return &pairs.ValidationError{Field: "from", Reason: "from and to must be given together"}
		}
		if !p.From.Before(p.To) {
			return &pairs.ValidationError{Field: "from", Reason: "must be before to"}
		}
	} else if p.N < 3 {
		return &pairs.ValidationError{Field: "n", Reason: fmt.Sprintf("must be >= 3, got %d", p.N)}
	}
	return p.Config.Validate()
}

// CacheKey identifies the report produced for p.
func (p AnalyzeParams) CacheKey() string {
	c := p.Config
	return cache.HashKey(cache.Key("pairs",
		p.SymbolA, p.SymbolB, p.Timeframe, p.N, p.From.Unix(), p.To.Unix(),
		c.Window, c.RegressionThreshold, c.DistanceThreshold, c.Horizon,
	))
}

// Analyze runs the pair pipeline. Storing, publishing and caching are best effort:
// their failures are logged and counted but do not fail the call.
func (a *PairAnalyzer) Analyze(ctx context.Context, p AnalyzeParams) (*models.Report, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	pair := models.PairKey(p.SymbolA, p.SymbolB)
	l := a.l.With(applogger.String("pair", pair), applogger.String("tf", string(p.Timeframe)))

	key := p.CacheKey()
	if a.cache != nil && !p.NoCache {
		r, ok, err := a.cache.Get(ctx, key)
		switch {
		case err != nil:
			a.metrics.RecordError("cache_get")
			l.Warn("report cache get failed", applogger.Error(err))
		case ok:
			a.metrics.RecordRun(pair, "cached")
			l.Debug("report cache hit", applogger.String("key", key))
			return r, nil
		}
	}

	sa, sb, err := a.fetch(ctx, p)
	if err != nil {
		a.metrics.RecordRun(pair, "error")
		a.metrics.RecordError("fetch")
		return nil, err
	}
	a.metrics.RecordLatency("fetch", time.Since(start).Seconds())

	pipe, err := pairs.NewPipeline(p.Config, pairs.WithLogger(l))
	if err != nil {
		return nil, err
	}
	runStart := time.Now()
	report, err := pipe.Run(ctx, sa, sb)
	a.metrics.RecordLatency("pipeline", time.Since(runStart).Seconds())
	if err != nil {
		a.metrics.RecordRun(pair, "error")
		a.metrics.RecordError("pipeline")
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	a.metrics.RecordRun(pair, "ok")
	a.metrics.RecordEvents(pair, report.Summary.Wins, report.Summary.Losses)
	a.metrics.RecordInvalidWindows(pair, report.Summary.InvalidWindows)
	a.metrics.RecordZeroCrossingRate(pair, report.Summary.ZeroCrossingRate)

	a.sink(ctx, l, key, report)

	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	l.Info("pair analyzed",
		applogger.Int("points", report.Summary.Points),
		applogger.Int("wins", report.Summary.Wins),
		applogger.Int("losses", report.Summary.Losses),
		applogger.Float64("hit_rate", report.Summary.HitRate),
		applogger.Float64("zcr", report.Summary.ZeroCrossingRate),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return report, nil
}

// fetch loads both legs concurrently and turns them into pipeline series.
func (a *PairAnalyzer) fetch(ctx context.Context, p AnalyzeParams) (pairs.Series, pairs.Series, error) {
	var ca, cb []models.Candle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ca, err = a.candles(gctx, p.SymbolA, p)
		return err
	})
	g.Go(func() error {
		var err error
		cb, err = a.candles(gctx, p.SymbolB, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return pairs.Series{}, pairs.Series{}, err
	}

	// N log returns need N+1 closes
	expected := 0
	if !p.ranged() {
		expected = p.N + 1
	}
	return series(p.SymbolA, p.Timeframe, expected, ca), series(p.SymbolB, p.Timeframe, expected, cb), nil
}

func (a *PairAnalyzer) candles(ctx context.Context, symbol string, p AnalyzeParams) ([]models.Candle, error) {
	var (
		out []models.Candle
		err error
	)
	if p.ranged() {
		out, err = a.bars.GetCandles(ctx, symbol, p.From, p.To, p.Timeframe)
	} else {
		out, err = a.bars.GetLatestNCandles(ctx, symbol, p.N+1, p.Timeframe)
	}
	if err != nil {
		return nil, fmt.Errorf("get candles %s: %w", symbol, err)
	}
	return out, nil
}

func series(symbol string, tf domrepo.Timeframe, expected int, candles []models.Candle) pairs.Series {
	return pairs.Series{
		Symbol:        symbol,
		Timeframe:     string(tf),
		ExpectedCount: expected,
		Bars:          features.BuildBars(candles),
	}
}

func (a *PairAnalyzer) sink(ctx context.Context, l *applogger.Logger, key string, r *models.Report) {
	if a.events != nil {
		if err := a.events.SaveEvents(ctx, r); err != nil {
			a.metrics.RecordError("event_store")
			l.Error("save events failed", applogger.Error(err))
		}
	}
	if a.pub != nil {
		if err := a.pub.PublishReport(ctx, r); err != nil {
			a.metrics.RecordError("publish")
			l.Error("publish report failed", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Set(ctx, key, r, a.cacheTTL); err != nil {
			a.metrics.RecordError("cache_set")
			l.Warn("report cache set failed", applogger.Error(err))
		}
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordRun(string, string) {}
func (nopMetrics) RecordEvents(string, int, int) {}
func (nopMetrics) RecordInvalidWindows(string, int) {}
func (nopMetrics) RecordZeroCrossingRate(string, float64) {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordError(string) {}
