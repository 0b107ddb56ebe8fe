package models

// Requests and responses for pair HTTP endpoints. Defined in domain for consistency and reuse.

type PairSignalsRequest struct {
	SymbolA             string  `query:"symbol_a" json:"symbol_a" validate:"required"`
	SymbolB             string  `query:"symbol_b" json:"symbol_b" validate:"required,nefield=SymbolA"`
	N                   int     `query:"n" json:"n" default:"500" validate:"gte=3,lte=20000"`
	TF                  string  `query:"tf" json:"tf" default:"1m" validate:"oneof=1s 1m 5m 1h"`
	From                string  `query:"from" json:"from"`
	To                  string  `query:"to" json:"to"`
	Window              int     `query:"window" json:"window" default:"5" validate:"gte=2,lte=1000"`
	RegressionThreshold float64 `query:"regression_threshold" json:"regression_threshold" default:"0.0002" validate:"gt=0"`
	DistanceThreshold   float64 `query:"distance_threshold" json:"distance_threshold" default:"0.9" validate:"gt=0,lt=1"`
	Horizon             int     `query:"horizon" json:"horizon" default:"5" validate:"gte=2,lte=1000"`
	Series              bool    `query:"series" json:"series"`
	NoCache             bool    `query:"no_cache" json:"no_cache"`
}

type PairSignalsResponse struct {
	Summary   SummaryDTO    `json:"summary"`
	Events    []EventDTO    `json:"events"`
	Distances []DistanceDTO `json:"distances,omitempty"`
}

// NewPairSignalsResponse renders r; the distance series is included only when withSeries is set.
func NewPairSignalsResponse(r *Report, withSeries bool) PairSignalsResponse {
	resp := PairSignalsResponse{
		Summary: r.ToSummaryDTO(),
		Events:  make([]EventDTO, 0, len(r.Events)),
	}
	for _, e := range r.Events {
		resp.Events = append(resp.Events, e.ToEventDTO())
	}
	if withSeries {
		resp.Distances = make([]DistanceDTO, 0, len(r.Distances))
		for _, d := range r.Distances {
			dto := DistanceDTO{Time: d.Time, Distance: d.Distance}
			if w, ok := r.WindowAt(d.Index); ok {
				dto.Slope, dto.R2 = w.Slope, w.R2
			}
			resp.Distances = append(resp.Distances, dto)
		}
	}
	return resp
}
