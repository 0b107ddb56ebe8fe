package pairs

import (
	"math"
	"time"

	"PairSignal/internal/domain/models"
)

var t0 = time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)

func hour(i int) time.Time { return t0.Add(time.Duration(i) * time.Hour) }

func dists(vals ...float64) []models.DistancePoint {
	out := make([]models.DistancePoint, len(vals))
	for i, v := range vals {
		out[i] = models.DistancePoint{Index: i, Time: hour(i), Distance: v}
	}
	return out
}

// seriesFromCloses builds a Series whose first bar has no return, like a freshly fetched window.
func seriesFromCloses(symbol string, closes ...float64) Series {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{Time: hour(i), Close: c, LogReturn: math.NaN()}
		if i > 0 {
			bars[i].LogReturn = math.Log(c / closes[i-1])
		}
	}
	return Series{Symbol: symbol, Timeframe: "1h", Bars: bars}
}

func pointsFromReturns(xs, ys []float64) []models.PairedPoint {
	out := make([]models.PairedPoint, len(xs))
	for i := range xs {
		out[i] = models.PairedPoint{Time: hour(i), LogReturnA: xs[i], LogReturnB: ys[i], CloseA: 1, CloseB: 1}
	}
	return out
}

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }
