package pairs

import (
	"PairSignal/internal/domain/models"
)

// ZeroCrossingRate is the fraction of consecutive distance pairs whose sign differs.
// A distance of exactly zero has its own sign, so 0 -> + counts as a change.
func ZeroCrossingRate(distances []models.DistancePoint) float64 {
	if len(distances) < 2 {
		return 0
	}
	changes := 0
	for k := 1; k < len(distances); k++ {
		if sign(distances[k].Distance) != sign(distances[k-1].Distance) {
			changes++
		}
	}
	return float64(changes) / float64(len(distances)-1)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Summarize averages the valid fits and condenses the labeled events of a run.
func Summarize(points []models.PairedPoint, windows []models.RegressionWindow, events []models.Event, zcr float64) models.Summary {
	s := models.Summary{Points: len(points), ZeroCrossingRate: zcr}
	var slope, intercept, r2 float64
	for _, w := range windows {
		if !w.Valid {
			s.InvalidWindows++
			continue
		}
		s.ValidWindows++
		slope += w.Slope
		intercept += w.Intercept
		r2 += w.R2
	}
	if s.ValidWindows > 0 {
		n := float64(s.ValidWindows)
		s.MeanSlope = slope / n
		s.MeanIntercept = intercept / n
		s.MeanR2 = r2 / n
	}
	for _, e := range events {
		if e.Kind == models.EventWin {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	if total := s.Wins + s.Losses; total > 0 {
		s.HitRate = float64(s.Wins) / float64(total)
	}
	return s
}
