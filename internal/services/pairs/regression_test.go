package pairs

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func sse(xs, ys []float64, a, b float64) float64 {
	s := 0.0
	for i := range xs {
		r := ys[i] - a*xs[i] - b
		s += r * r
	}
	return s
}

func TestFitWindowExactLine(t *testing.T) {
	xs := []float64{-0.002, 0.001, 0.003, 0.004}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 0.0005
	}
	w := FitWindow(xs, ys)
	if !w.Valid {
		t.Fatalf("expected valid window: %+v", w)
	}
	if !approx(w.Slope, 2, 1e-9) || !approx(w.Intercept, 0.0005, 1e-12) || !approx(w.R2, 1, 1e-9) {
		t.Fatalf("unexpected fit %+v", w)
	}
}

func TestFitWindowMinimizesSquaredResiduals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 5 + rng.Intn(30)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range xs {
			xs[i] = rng.NormFloat64() * 0.002
			ys[i] = 0.7*xs[i] + 0.0001 + rng.NormFloat64()*0.0005
		}
		w := FitWindow(xs, ys)
		if !w.Valid {
			t.Fatalf("trial %d: unexpected invalid window", trial)
		}

		// reference: normal equations solved by Cramer's rule
		var sx, sy, sxx, sxy float64
		for i := range xs {
			sx += xs[i]
			sy += ys[i]
			sxx += xs[i] * xs[i]
			sxy += xs[i] * ys[i]
		}
		det := float64(n)*sxx - sx*sx
		refA := (float64(n)*sxy - sx*sy) / det
		refB := (sxx*sy - sx*sxy) / det
		if !approx(w.Slope, refA, 1e-6) || !approx(w.Intercept, refB, 1e-9) {
			t.Fatalf("trial %d: fit (%v,%v) differs from reference (%v,%v)", trial, w.Slope, w.Intercept, refA, refB)
		}

		best := sse(xs, ys, w.Slope, w.Intercept)
		for _, da := range []float64{-1e-2, -1e-4, 1e-4, 1e-2} {
			for _, db := range []float64{-1e-5, 0, 1e-5} {
				if got := sse(xs, ys, w.Slope+da, w.Intercept+db); got < best-1e-18 {
					t.Fatalf("trial %d: perturbed fit has lower SSE %v < %v", trial, got, best)
				}
			}
		}
		if w.R2 < 0 || w.R2 > 1 {
			t.Fatalf("trial %d: r2 out of range %v", trial, w.R2)
		}
	}
}

func TestComputeRegressionsConstantX(t *testing.T) {
	xs := []float64{0.001, 0.001, 0.001, 0.001, 0.001, 0.001}
	ys := []float64{0.002, -0.001, 0.003, 0.0, 0.001, 0.002}
	windows, err := NewRegressionEngine(2).Compute(context.Background(), pointsFromReturns(xs, ys), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(windows))
	}
	for _, w := range windows {
		if w.Valid || w.Reason != ReasonZeroVarianceX {
			t.Fatalf("window %d must be flagged zero variance: %+v", w.StartIndex, w)
		}
	}
	if got := ComputeDistances(pointsFromReturns(xs, ys), windows); len(got) != 0 {
		t.Fatalf("invalid windows must not yield distances, got %v", got)
	}
}

func TestComputeRegressionsConstantStretch(t *testing.T) {
	xs := []float64{0.001, 0.002, 0.003, 0.003, 0.003, 0.003, 0.004}
	ys := []float64{0.001, 0.003, 0.002, 0.001, 0.004, 0.002, 0.001}
	windows, err := NewRegressionEngine(1).Compute(context.Background(), pointsFromReturns(xs, ys), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range windows {
		constant := w.StartIndex >= 2 && w.EndIndex <= 6
		if constant == w.Valid {
			t.Fatalf("window [%d,%d) valid=%v", w.StartIndex, w.EndIndex, w.Valid)
		}
	}
}

func TestComputeRegressionsIndexing(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n, window := 40, 6
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()
		ys[i] = rng.NormFloat64()
	}
	points := pointsFromReturns(xs, ys)

	seq, err := NewRegressionEngine(1).Compute(context.Background(), points, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	par, err := NewRegressionEngine(7).Compute(context.Background(), points, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != n-window+1 || len(par) != len(seq) {
		t.Fatalf("unexpected window counts %d %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("window %d differs between sequential and parallel: %+v vs %+v", i, seq[i], par[i])
		}
		if seq[i].StartIndex != i || seq[i].EndIndex-seq[i].StartIndex != window {
			t.Fatalf("bad indices %+v", seq[i])
		}
		if seq[i].BarIndex() != i+window-1 {
			t.Fatalf("window must belong to its last bar, got %d", seq[i].BarIndex())
		}
	}
}

func TestComputeRegressionsValidation(t *testing.T) {
	points := pointsFromReturns([]float64{1, 2, 3}, []float64{1, 2, 3})
	var verr *ValidationError
	if _, err := ComputeRegressions(context.Background(), points, 1); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for window 1, got %v", err)
	}
	if _, err := ComputeRegressions(context.Background(), points, 4); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for short series, got %v", err)
	}
}

func TestComputeRegressionsCancelled(t *testing.T) {
	points := pointsFromReturns([]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRegressionEngine(2).Compute(ctx, points, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
