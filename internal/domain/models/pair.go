package models

import "time"

// PairedPoint is one aligned observation of both legs.
type PairedPoint struct {
	Time       time.Time
	LogReturnA float64
	LogReturnB float64
	CloseA     float64
	CloseB     float64
}

// RegressionWindow is the OLS fit of LogReturnB on LogReturnA over points [StartIndex, EndIndex).
// The window belongs to bar EndIndex-1. Invalid windows carry a Reason and no usable fit.
type RegressionWindow struct {
	StartIndex int
	EndIndex   int
	Slope      float64
	Intercept  float64
	R2         float64
	Valid      bool
	Reason     string
}

// BarIndex returns the index of the bar the window is associated with.
func (w RegressionWindow) BarIndex() int { return w.EndIndex - 1 }

// DistancePoint is the signed perpendicular distance of point Index from its regression line.
type DistancePoint struct {
	Index    int
	Time     time.Time
	Distance float64
}

type EventKind string

const (
	EventWin  EventKind = "win"
	EventLoss EventKind = "loss"
)

// Event is a resolved trigger. TriggerIndex indexes the distance series, PointIndex the paired points.
type Event struct {
	Kind             EventKind
	TriggerIndex     int
	PointIndex       int
	Time             time.Time
	EntryDistance    float64
	ExitDistance     float64
	ResolutionOffset int
}

// Span returns the inclusive distance-index range occupied by the event.
func (e Event) Span() (int, int) { return e.TriggerIndex, e.TriggerIndex + e.ResolutionOffset }

type OutcomeTally struct {
	Wins   int
	Losses int
}

// Total returns wins plus losses.
func (t OutcomeTally) Total() int { return t.Wins + t.Losses }

// OutcomeReport holds the realized-direction tally per leg and combined.
type OutcomeReport struct {
	LegA     OutcomeTally
	LegB     OutcomeTally
	Combined OutcomeTally
}
