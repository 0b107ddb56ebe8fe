package pairs

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"PairSignal/internal/domain/models"
)

const (
	// ReasonZeroVarianceX marks a window whose x values are constant.
	ReasonZeroVarianceX = "zero_variance_x"
	// ReasonNonFinite marks a window holding an infinite or NaN return.
	ReasonNonFinite = "non_finite_input"

	// relative tolerance for treating a sum of squared deviations as zero
	varianceEpsilon = 1e-12
	// windows fitted by one worker between context checks
	ctxCheckEvery = 256
)

// RegressionEngine fits rolling OLS windows of LogReturnB on LogReturnA.
type RegressionEngine struct {
	workers int
}

// NewRegressionEngine returns an engine fanning windows out to at most workers goroutines.
func NewRegressionEngine(workers int) *RegressionEngine {
	if workers < 1 {
		workers = 1
	}
	return &RegressionEngine{workers: workers}
}

// ComputeRegressions fits every window with the default worker count.
func ComputeRegressions(ctx context.Context, points []models.PairedPoint, window int) ([]models.RegressionWindow, error) {
	return NewRegressionEngine(DefaultConfig().workers()).Compute(ctx, points, window)
}

// Compute returns one window per start position i with i+window <= len(points), in start order.
// Windows are independent; each worker writes only its own slots of the result.
func (e *RegressionEngine) Compute(ctx context.Context, points []models.PairedPoint, window int) ([]models.RegressionWindow, error) {
	if window < 2 {
		return nil, invalid("window", "must be >= 2, got %d", window)
	}
	if len(points) < window {
		return nil, invalid("points", "need at least %d aligned points, got %d", window, len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.LogReturnA
		ys[i] = p.LogReturnB
	}

	out := make([]models.RegressionWindow, len(points)-window+1)
	chunk := (len(out) + e.workers - 1) / e.workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for lo := 0; lo < len(out); lo += chunk {
		hi := min(lo+chunk, len(out))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				out[i] = FitWindow(xs[i:i+window], ys[i:i+window])
				out[i].StartIndex = i
				out[i].EndIndex = i + window
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FitWindow solves the normal equations for y = slope*x + intercept and
// reports R² as the squared Pearson correlation of xs and ys.
// Index fields of the result are left zero.
func FitWindow(xs, ys []float64) models.RegressionWindow {
	n := float64(len(xs))
	var sx, sy float64
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			return models.RegressionWindow{Reason: ReasonNonFinite}
		}
		sx += xs[i]
		sy += ys[i]
	}
	mx, my := sx/n, sy/n

	var sxx, syy, sxy, x2, y2 float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
		x2 += xs[i] * xs[i]
		y2 += ys[i] * ys[i]
	}
	if sxx <= varianceEpsilon*x2 {
		return models.RegressionWindow{Reason: ReasonZeroVarianceX}
	}

	slope := sxy / sxx
	w := models.RegressionWindow{
		Slope:     slope,
		Intercept: my - slope*mx,
		Valid:     true,
	}
	// constant y: correlation is undefined, nothing is co-moving
	if syy > varianceEpsilon*y2 {
		w.R2 = math.Min(1, sxy*sxy/(sxx*syy))
	}
	return w
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
