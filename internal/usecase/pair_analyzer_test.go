package usecase

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PairSignal/internal/domain/models"
	domrepo "PairSignal/internal/domain/repository"
	"PairSignal/internal/services/pairs"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// fakeBars serves a co-moving pair: B follows 0.8*A plus noise.
type fakeBars struct {
	mu       sync.Mutex
	latestN  []int
	ranged   int
	short    bool
	err      error
	returnsA []float64
	returnsB []float64
}

func newFakeBars(n int) *fakeBars {
	rng := rand.New(rand.NewSource(7))
	f := &fakeBars{}
	for i := 0; i < n; i++ {
		ra := rng.NormFloat64() * 0.001
		f.returnsA = append(f.returnsA, ra)
		f.returnsB = append(f.returnsB, 0.8*ra+rng.NormFloat64()*0.0003)
	}
	return f
}

func (f *fakeBars) build(symbol string, count int) []models.Candle {
	rets := f.returnsA
	if symbol == "GBPUSD" {
		rets = f.returnsB
	}
	if count > len(rets)+1 {
		count = len(rets) + 1
	}
	out := make([]models.Candle, count)
	c := 1.0
	for i := range out {
		if i > 0 {
			c *= math.Exp(rets[i-1])
		}
		out[i] = models.Candle{Bucket: t0.Add(time.Duration(i) * time.Hour), Symbol: symbol, Close: c}
	}
	if f.short {
		out = out[1:]
	}
	return out
}

func (f *fakeBars) GetCandles(_ context.Context, symbol string, from, to time.Time, _ domrepo.Timeframe) ([]models.Candle, error) {
	f.mu.Lock()
	f.ranged++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.build(symbol, int(to.Sub(from)/time.Hour)+1), nil
}

func (f *fakeBars) GetLatestNCandles(_ context.Context, symbol string, n int, _ domrepo.Timeframe) ([]models.Candle, error) {
	f.mu.Lock()
	f.latestN = append(f.latestN, n)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.build(symbol, n), nil
}

type fakeSinks struct {
	saved     int
	published int
	err       error
}

func (s *fakeSinks) SaveEvents(context.Context, *models.Report) error {
	s.saved++
	return s.err
}

func (s *fakeSinks) PublishReport(context.Context, *models.Report) error {
	s.published++
	return s.err
}

func (s *fakeSinks) Close() error { return nil }

type mapCache struct {
	m    map[string]*models.Report
	sets int
}

func (c *mapCache) Get(_ context.Context, key string) (*models.Report, bool, error) {
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, r *models.Report, _ time.Duration) error {
	c.sets++
	c.m[key] = r
	return nil
}

type countingMetrics struct {
	nopMetrics
	runs   map[string]int
	errors map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{runs: map[string]int{}, errors: map[string]int{}}
}

func (m *countingMetrics) RecordRun(_ string, status string) { m.runs[status]++ }
func (m *countingMetrics) RecordError(kind string) { m.errors[kind]++ }

func params(n int) AnalyzeParams {
	return AnalyzeParams{
		SymbolA:   "EURUSD",
		SymbolB:   "GBPUSD",
		Timeframe: domrepo.TF1h,
		N:         n,
		Config:    pairs.DefaultConfig(),
	}
}

func TestAnalyze_LatestN(t *testing.T) {
	bars := newFakeBars(200)
	sinks := &fakeSinks{}
	c := &mapCache{m: map[string]*models.Report{}}
	m := newCountingMetrics()
	a := NewPairAnalyzer(bars,
		WithEventStore(sinks),
		WithPublisher(sinks),
		WithReportCache(c, time.Minute),
		WithMetrics(m),
	)

	r, err := a.Analyze(context.Background(), params(100))
	require.NoError(t, err)

	assert.Equal(t, []int{101, 101}, bars.latestN)
	assert.Len(t, r.Points, 100)
	assert.Len(t, r.Windows, 96)
	assert.Equal(t, "EURUSD", r.SymbolA)
	assert.Equal(t, "1h", r.Timeframe)
	assert.Equal(t, t0.Add(100*time.Hour), r.AsOf)
	assert.Greater(t, r.Summary.MeanSlope, 0.0)
	assert.Equal(t, 1, sinks.saved)
	assert.Equal(t, 1, sinks.published)
	assert.Equal(t, 1, c.sets)
	assert.Equal(t, 1, m.runs["ok"])
}

func TestAnalyze_CacheHitSkipsFetch(t *testing.T) {
	bars := newFakeBars(200)
	c := &mapCache{m: map[string]*models.Report{}}
	m := newCountingMetrics()
	a := NewPairAnalyzer(bars, WithReportCache(c, time.Minute), WithMetrics(m))

	first, err := a.Analyze(context.Background(), params(60))
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), params(60))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, bars.latestN, 2)
	assert.Equal(t, 1, m.runs["cached"])

	p := params(60)
	p.NoCache = true
	_, err = a.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, bars.latestN, 4)
}

func TestAnalyze_CacheKeyDependsOnConfig(t *testing.T) {
	p := params(60)
	q := params(60)
	q.Config.Horizon = 7
	assert.NotEqual(t, p.CacheKey(), q.CacheKey())
	assert.Equal(t, p.CacheKey(), params(60).CacheKey())
}

func TestAnalyze_SinkFailuresAreNotFatal(t *testing.T) {
	sinks := &fakeSinks{err: errors.New("broker down")}
	m := newCountingMetrics()
	a := NewPairAnalyzer(newFakeBars(200), WithEventStore(sinks), WithPublisher(sinks), WithMetrics(m))

	r, err := a.Analyze(context.Background(), params(80))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 1, m.errors["event_store"])
	assert.Equal(t, 1, m.errors["publish"])
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	a := NewPairAnalyzer(newFakeBars(10))
	cases := map[string]func(*AnalyzeParams){
		"same symbols":  func(p *AnalyzeParams) { p.SymbolB = p.SymbolA },
		"missing a":     func(p *AnalyzeParams) { p.SymbolA = "" },
		"bad timeframe": func(p *AnalyzeParams) { p.Timeframe = "2d" },
		"tiny n":        func(p *AnalyzeParams) { p.N = 2 },
		"half range":    func(p *AnalyzeParams) { p.From = t0 },
		"bad horizon":   func(p *AnalyzeParams) { p.Config.Horizon = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := params(50)
			mutate(&p)
			_, err := a.Analyze(context.Background(), p)
			var ve *pairs.ValidationError
			assert.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
}

func TestAnalyze_ShortHistoryIsAlignmentError(t *testing.T) {
	bars := newFakeBars(200)
	bars.short = true
	_, err := NewPairAnalyzer(bars).Analyze(context.Background(), params(50))
	var ae *pairs.AlignmentError
	assert.True(t, errors.As(err, &ae), "got %v", err)
}

func TestAnalyze_FetchErrorPropagates(t *testing.T) {
	bars := newFakeBars(200)
	bars.err = errors.New("clickhouse unavailable")
	m := newCountingMetrics()
	_, err := NewPairAnalyzer(bars, WithMetrics(m)).Analyze(context.Background(), params(50))
	assert.ErrorIs(t, err, bars.err)
	assert.Equal(t, 1, m.runs["error"])
	assert.Equal(t, 1, m.errors["fetch"])
}

func TestAnalyze_Ranged(t *testing.T) {
	bars := newFakeBars(200)
	p := params(0)
	p.From = t0
	p.To = t0.Add(40 * time.Hour)

	r, err := NewPairAnalyzer(bars).Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 2, bars.ranged)
	assert.Empty(t, bars.latestN)
	assert.Len(t, r.Points, 40)
}
