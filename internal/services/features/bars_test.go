package features

import (
    "math"
    "testing"
    "time"

    "PairSignal/internal/domain/models"
)

func candlesAt(closes ...float64) []models.Candle {
    base := time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)
    out := make([]models.Candle, len(closes))
    for i, c := range closes {
        out[i] = models.Candle{Bucket: base.Add(time.Duration(i) * time.Hour), Symbol: "EURUSD", Close: c}
    }
    return out
}

func TestBuildBarsLogReturns(t *testing.T) {
    bars := BuildBars(candlesAt(100, 110, 99))
    if len(bars) != 3 {
        t.Fatalf("expected 3 bars, got %d", len(bars))
    }
    if !math.IsNaN(bars[0].LogReturn) {
        t.Fatalf("first bar must have undefined return, got %v", bars[0].LogReturn)
    }
    if math.Abs(bars[1].LogReturn-math.Log(1.1)) > 1e-12 {
        t.Fatalf("unexpected return %v", bars[1].LogReturn)
    }
    if math.Abs(bars[2].LogReturn-math.Log(0.9)) > 1e-12 {
        t.Fatalf("unexpected return %v", bars[2].LogReturn)
    }
}

func TestBuildBarsNonPositiveClose(t *testing.T) {
    bars := BuildBars(candlesAt(1, 0, 2))
    if !math.IsNaN(bars[1].LogReturn) || !math.IsNaN(bars[2].LogReturn) {
        t.Fatalf("returns around a zero close must be NaN: %+v", bars)
    }
}

func TestBuildBarsEmpty(t *testing.T) {
    if BuildBars(nil) != nil {
        t.Fatalf("expected nil")
    }
}
