package pairs

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"PairSignal/internal/domain/models"
)

func syntheticPair(n int, seed int64) (Series, Series) {
	rng := rand.New(rand.NewSource(seed))
	ca, cb := make([]float64, n), make([]float64, n)
	ca[0], cb[0] = 1.10, 1.30
	for i := 1; i < n; i++ {
		ra := rng.NormFloat64() * 0.002
		rb := 0.8*ra + rng.NormFloat64()*0.0008
		ca[i] = ca[i-1] * math.Exp(ra)
		cb[i] = cb[i-1] * math.Exp(rb)
	}
	return seriesFromCloses("EURUSD", ca...), seriesFromCloses("GBPUSD", cb...)
}

func TestPipelineRun(t *testing.T) {
	a, b := syntheticPair(300, 1)
	p, err := NewPipeline(Config{Window: 5, RegressionThreshold: 0.0002, DistanceThreshold: 0.5, Horizon: 5, Workers: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep, err := p.Run(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Points) != 299 {
		t.Fatalf("expected 299 points, got %d", len(rep.Points))
	}
	if len(rep.Windows) != 295 {
		t.Fatalf("expected 295 windows, got %d", len(rep.Windows))
	}
	if len(rep.Distances) != rep.Summary.ValidWindows {
		t.Fatalf("one distance per valid window expected: %d vs %d", len(rep.Distances), rep.Summary.ValidWindows)
	}
	if len(rep.Events) == 0 {
		t.Fatalf("expected some events on a noisy pair")
	}
	for _, d := range rep.Distances {
		if math.IsNaN(d.Distance) {
			t.Fatalf("NaN distance at %d", d.Index)
		}
	}
	wins := 0
	for _, e := range rep.Events {
		if e.Kind == "win" {
			wins++
		}
	}
	if rep.Outcomes.Combined.Total() != 2*wins {
		t.Fatalf("each win scores two legs: %+v vs %d wins", rep.Outcomes, wins)
	}
	if want := (models.RunConfig{Window: 5, RegressionThreshold: 0.0002, DistanceThreshold: 0.5, Horizon: 5}); rep.Config != want {
		t.Fatalf("run settings not recorded: %+v", rep.Config)
	}
	if !rep.AsOf.Equal(rep.Points[len(rep.Points)-1].Time) {
		t.Fatalf("unexpected as-of %v", rep.AsOf)
	}
	if rep.Summary.ZeroCrossingRate < 0 || rep.Summary.ZeroCrossingRate > 1 {
		t.Fatalf("zcr out of range %v", rep.Summary.ZeroCrossingRate)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	a, b := syntheticPair(200, 9)
	p, err := NewPipeline(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := p.Run(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Run(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pipeline output differs between identical runs")
	}
}

func TestNewPipelineRejectsBadConfig(t *testing.T) {
	bad := []Config{
		{Window: 1, RegressionThreshold: 0.1, DistanceThreshold: 0.5, Horizon: 3},
		{Window: 5, RegressionThreshold: 0.1, DistanceThreshold: 1.5, Horizon: 3},
		{Window: 5, RegressionThreshold: math.NaN(), DistanceThreshold: 0.5, Horizon: 3},
		{Window: 5, RegressionThreshold: 0.1, DistanceThreshold: 0.5, Horizon: 3, Workers: -1},
	}
	for _, cfg := range bad {
		var verr *ValidationError
		if _, err := NewPipeline(cfg); !errors.As(err, &verr) {
			t.Fatalf("config %+v: expected ValidationError, got %v", cfg, err)
		}
	}
}

func TestPipelinePropagatesAlignmentError(t *testing.T) {
	p, _ := NewPipeline(DefaultConfig())
	a, _ := syntheticPair(20, 2)
	_, err := p.Run(context.Background(), a, Series{Symbol: "GBPUSD"})
	var aerr *AlignmentError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}
