package pairs

import (
	"math"

	"PairSignal/internal/domain/models"
)

// SignedDistance is the perpendicular distance of (x, y) from y = slope*x + intercept,
// positive when the point lies above the line (leg A cheap against leg B).
func SignedDistance(x, y, slope, intercept float64) float64 {
	return (y - slope*x - intercept) / math.Sqrt(slope*slope+1)
}

// ComputeDistances measures each point against the window that ends on it.
// Points without a valid window are omitted rather than zero-filled.
func ComputeDistances(points []models.PairedPoint, windows []models.RegressionWindow) []models.DistancePoint {
	out := make([]models.DistancePoint, 0, len(windows))
	for _, w := range windows {
		if !w.Valid {
			continue
		}
		idx := w.BarIndex()
		if idx < 0 || idx >= len(points) {
			continue
		}
		p := points[idx]
		d := SignedDistance(p.LogReturnA, p.LogReturnB, w.Slope, w.Intercept)
		if !isFinite(d) {
			continue
		}
		out = append(out, models.DistancePoint{Index: idx, Time: p.Time, Distance: d})
	}
	return out
}
