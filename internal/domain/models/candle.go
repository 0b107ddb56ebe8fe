package models

import "time"

// Candle represents an OHLCV record as stored in the candle tables.
type Candle struct {
	Bucket time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bar is one instrument's bar with its log return attached.
// LogReturn is NaN when it cannot be computed (first bar, non-positive close).
type Bar struct {
	Time      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	LogReturn float64
}
