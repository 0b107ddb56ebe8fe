package models

import "time"

// Wire shapes shared by the HTTP API and the Kafka feed.

type SummaryDTO struct {
	SymbolA          string    `json:"symbol_a"`
	SymbolB          string    `json:"symbol_b"`
	Timeframe        string    `json:"tf"`
	AsOf             time.Time `json:"as_of"`
	Points           int       `json:"points"`
	ValidWindows     int       `json:"valid_windows"`
	InvalidWindows   int       `json:"invalid_windows"`
	MeanSlope        float64   `json:"mean_slope"`
	MeanIntercept    float64   `json:"mean_intercept"`
	MeanR2           float64   `json:"mean_r2"`
	Wins             int       `json:"wins"`
	Losses           int       `json:"losses"`
	HitRate          float64   `json:"hit_rate"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate"`
	LegA             TallyDTO  `json:"leg_a"`
	LegB             TallyDTO  `json:"leg_b"`
	Combined         TallyDTO  `json:"combined"`
}

type TallyDTO struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type EventDTO struct {
	SymbolA          string    `json:"symbol_a,omitempty"`
	SymbolB          string    `json:"symbol_b,omitempty"`
	Kind             string    `json:"kind"`
	Time             time.Time `json:"ts"`
	TriggerIndex     int       `json:"trigger_index"`
	PointIndex       int       `json:"point_index"`
	EntryDistance    float64   `json:"entry_distance"`
	ExitDistance     float64   `json:"exit_distance"`
	ResolutionOffset int       `json:"resolution_offset"`
}

type DistanceDTO struct {
	Time     time.Time `json:"ts"`
	Distance float64   `json:"distance"`
	Slope    float64   `json:"slope"`
	R2       float64   `json:"r2"`
}

// ToSummaryDTO flattens a report's summary and outcomes.
func (r *Report) ToSummaryDTO() SummaryDTO {
	s := r.Summary
	return SummaryDTO{
		SymbolA:          r.SymbolA,
		SymbolB:          r.SymbolB,
		Timeframe:        r.Timeframe,
		AsOf:             r.AsOf,
		Points:           s.Points,
		ValidWindows:     s.ValidWindows,
		InvalidWindows:   s.InvalidWindows,
		MeanSlope:        s.MeanSlope,
		MeanIntercept:    s.MeanIntercept,
		MeanR2:           s.MeanR2,
		Wins:             s.Wins,
		Losses:           s.Losses,
		HitRate:          s.HitRate,
		ZeroCrossingRate: s.ZeroCrossingRate,
		LegA:             TallyDTO(r.Outcomes.LegA),
		LegB:             TallyDTO(r.Outcomes.LegB),
		Combined:         TallyDTO(r.Outcomes.Combined),
	}
}

// ToEventDTO converts e; pair symbols are filled by callers that need them.
func (e Event) ToEventDTO() EventDTO {
	return EventDTO{
		Kind:             string(e.Kind),
		Time:             e.Time,
		TriggerIndex:     e.TriggerIndex,
		PointIndex:       e.PointIndex,
		EntryDistance:    e.EntryDistance,
		ExitDistance:     e.ExitDistance,
		ResolutionOffset: e.ResolutionOffset,
	}
}

// Pair returns the "A/B" key used for partitioning and metrics labels.
func (r *Report) Pair() string { return PairKey(r.SymbolA, r.SymbolB) }

// PairKey joins two symbols into a pair label.
func PairKey(a, b string) string { return a + "/" + b }
