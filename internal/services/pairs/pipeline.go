package pairs

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"PairSignal/internal/domain/models"
	applogger "PairSignal/pkg/logger"
)

// Pipeline runs align -> regress -> distance -> label -> (score, diagnostics) over one pair.
// It holds no state between runs.
type Pipeline struct {
	cfg    Config
	engine *RegressionEngine
	l      *applogger.Logger
}

// PipelineOption configures Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.l = l
		}
	}
}

// NewPipeline validates cfg up front so that a bad configuration never reaches a scan.
func NewPipeline(cfg Config, opts ...PipelineOption) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:    cfg,
		engine: NewRegressionEngine(cfg.workers()),
		l:      applogger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Pipeline) Config() Config { return p.cfg }

// Run executes every stage over a and b. The report's AsOf is the last aligned bar time.
func (p *Pipeline) Run(ctx context.Context, a, b Series) (*models.Report, error) {
	start := time.Now()

	points, err := Align(a, b)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	windows, err := p.engine.Compute(ctx, points, p.cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("regressions: %w", err)
	}

	distances := ComputeDistances(points, windows)

	events, err := LabelEvents(distances, p.cfg.Label())
	if err != nil {
		return nil, fmt.Errorf("label events: %w", err)
	}

	outcomes, err := ScoreOutcomes(events, points)
	if err != nil {
		return nil, fmt.Errorf("score outcomes: %w", err)
	}

	zcr := ZeroCrossingRate(distances)
	report := &models.Report{
		SymbolA:   a.Symbol,
		SymbolB:   b.Symbol,
		Timeframe: cmp.Or(a.Timeframe, b.Timeframe),
		AsOf:      points[len(points)-1].Time,
		Config: models.RunConfig{
			Window:              p.cfg.Window,
			RegressionThreshold: p.cfg.RegressionThreshold,
			DistanceThreshold:   p.cfg.DistanceThreshold,
			Horizon:             p.cfg.Horizon,
		},
		Points:    points,
		Windows:   windows,
		Distances: distances,
		Events:    events,
		Outcomes:  outcomes,
		Summary:   Summarize(points, windows, events, zcr),
	}

	p.l.Debug("pair pipeline done",
		applogger.String("symbol_a", a.Symbol),
		applogger.String("symbol_b", b.Symbol),
		applogger.Int("points", len(points)),
		applogger.Int("distances", len(distances)),
		applogger.Int("events", len(events)),
		applogger.Float64("zcr", zcr),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return report, nil
}
