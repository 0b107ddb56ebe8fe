package pairs

import (
	"math"
	"testing"

	"PairSignal/internal/domain/models"
)

func TestSignedDistanceOnLineIsZero(t *testing.T) {
	for _, slope := range []float64{-3, -0.5, 0, 0.8, 12} {
		for _, x := range []float64{-0.01, 0, 0.004} {
			y := slope*x + 0.0002
			if d := SignedDistance(x, y, slope, 0.0002); !approx(d, 0, 1e-15) {
				t.Fatalf("slope %v x %v: expected 0, got %v", slope, x, d)
			}
		}
	}
}

func TestSignedDistanceSign(t *testing.T) {
	// line y = x, point (0, 1) sits above at 1/sqrt(2)
	if d := SignedDistance(0, 1, 1, 0); !approx(d, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("unexpected distance %v", d)
	}
	if d := SignedDistance(0, -1, 1, 0); !approx(d, -1/math.Sqrt2, 1e-12) {
		t.Fatalf("unexpected distance %v", d)
	}
	// steep negative slope keeps the same convention
	if d := SignedDistance(1, 0, -10, 5); d <= 0 {
		t.Fatalf("point above y=-10x+5 at x=1 must be positive, got %v", d)
	}
}

func TestComputeDistancesSkipsInvalidWindows(t *testing.T) {
	points := pointsFromReturns(
		[]float64{0.001, 0.002, 0.003, 0.004},
		[]float64{0.001, 0.002, 0.005, 0.001},
	)
	windows := []models.RegressionWindow{
		{StartIndex: 0, EndIndex: 2, Valid: false, Reason: ReasonZeroVarianceX},
		{StartIndex: 1, EndIndex: 3, Slope: 1, Valid: true},
		{StartIndex: 2, EndIndex: 4, Slope: 1, Valid: true},
	}
	got := ComputeDistances(points, windows)
	if len(got) != 2 {
		t.Fatalf("expected 2 distances, got %d", len(got))
	}
	if got[0].Index != 2 || got[1].Index != 3 {
		t.Fatalf("distances must sit on window end bars: %+v", got)
	}
	if got[0].Distance <= 0 || got[1].Distance >= 0 {
		t.Fatalf("unexpected signs: %+v", got)
	}
	if !got[0].Time.Equal(points[2].Time) {
		t.Fatalf("unexpected time %v", got[0].Time)
	}
}
