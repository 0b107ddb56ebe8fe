package models

import "time"

// Summary condenses a run into the numbers worth logging and publishing.
type Summary struct {
	Points           int
	ValidWindows     int
	InvalidWindows   int
	MeanSlope        float64
	MeanIntercept    float64
	MeanR2           float64
	Wins             int
	Losses           int
	HitRate          float64
	ZeroCrossingRate float64
}

// RunConfig records the pipeline settings a report was produced with.
type RunConfig struct {
	Window              int
	RegressionThreshold float64
	DistanceThreshold   float64
	Horizon             int
}

// Report is the full output of one pipeline run over a pair.
// Note: no transport (json/http) concerns here.
type Report struct {
	SymbolA   string
	SymbolB   string
	Timeframe string
	AsOf      time.Time
	Config    RunConfig
	Points    []PairedPoint
	Windows   []RegressionWindow
	Distances []DistancePoint
	Events    []Event
	Outcomes  OutcomeReport
	Summary   Summary
}

// WindowAt returns the regression window associated with point index i.
func (r *Report) WindowAt(i int) (RegressionWindow, bool) {
	if len(r.Windows) == 0 {
		return RegressionWindow{}, false
	}
	k := i - r.Windows[0].BarIndex()
	if k < 0 || k >= len(r.Windows) {
		return RegressionWindow{}, false
	}
	return r.Windows[k], true
}
