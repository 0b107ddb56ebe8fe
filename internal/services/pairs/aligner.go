package pairs

import (
	"math"
	"slices"
	"time"

	"PairSignal/internal/domain/models"
)

// Series is one instrument's bars as delivered by a bar provider.
// ExpectedCount, when positive, is the number of bars the caller asked for.
type Series struct {
	Symbol        string
	Timeframe     string
	ExpectedCount int
	Bars          []models.Bar
}

func (s Series) check() error {
	if len(s.Bars) == 0 {
		return &AlignmentError{Reason: "series " + s.name() + " is empty"}
	}
	if s.ExpectedCount > 0 && len(s.Bars) != s.ExpectedCount {
		return &AlignmentError{Reason: "series " + s.name() + " row count does not match requested count"}
	}
	seen := make(map[int64]struct{}, len(s.Bars))
	for _, b := range s.Bars {
		k := b.Time.UnixNano()
		if _, dup := seen[k]; dup {
			return &AlignmentError{Reason: "series " + s.name() + " has duplicate timestamp " + b.Time.UTC().Format(time.RFC3339)}
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (s Series) name() string {
	if s.Symbol == "" {
		return "<unnamed>"
	}
	return s.Symbol
}

// Align pairs the bars of a and b on shared timestamps, in ascending time order.
// Rows where either log return is undefined are dropped. Both series must share one
// timeframe when both declare it.
func Align(a, b Series) ([]models.PairedPoint, error) {
	if a.Timeframe != "" && b.Timeframe != "" && a.Timeframe != b.Timeframe {
		return nil, &AlignmentError{Reason: "series " + a.name() + " is " + a.Timeframe + " but " + b.name() + " is " + b.Timeframe}
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := b.check(); err != nil {
		return nil, err
	}

	byTime := make(map[int64]models.Bar, len(b.Bars))
	for _, bar := range b.Bars {
		byTime[bar.Time.UnixNano()] = bar
	}

	shared := 0
	out := make([]models.PairedPoint, 0, min(len(a.Bars), len(b.Bars)))
	for _, barA := range a.Bars {
		barB, ok := byTime[barA.Time.UnixNano()]
		if !ok {
			continue
		}
		shared++
		if math.IsNaN(barA.LogReturn) || math.IsNaN(barB.LogReturn) {
			continue
		}
		out = append(out, models.PairedPoint{
			Time:       barA.Time,
			LogReturnA: barA.LogReturn,
			LogReturnB: barB.LogReturn,
			CloseA:     barA.Close,
			CloseB:     barB.Close,
		})
	}
	if shared == 0 {
		return nil, &AlignmentError{Reason: "series " + a.name() + " and " + b.name() + " share no timestamps"}
	}
	if len(out) == 0 {
		return nil, &AlignmentError{Reason: "no shared rows with defined log returns on both legs"}
	}

	slices.SortFunc(out, func(x, y models.PairedPoint) int { return x.Time.Compare(y.Time) })
	return out, nil
}
