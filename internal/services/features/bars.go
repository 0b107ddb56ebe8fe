package features

import (
    "math"

    "PairSignal/internal/domain/models"
)

// BuildBars converts candles into bars carrying r_t = ln(C_t / C_{t-1}).
// The first bar, and any bar where either close is non-positive, gets a NaN return.
func BuildBars(candles []models.Candle) []models.Bar {
    if len(candles) == 0 {
        return nil
    }
    out := make([]models.Bar, len(candles))
    for i, c := range candles {
        out[i] = models.Bar{
            Time:      c.Bucket,
            Open:      c.Open,
            High:      c.High,
            Low:       c.Low,
            Close:     c.Close,
            LogReturn: math.NaN(),
        }
        if i == 0 {
            continue
        }
        prev := candles[i-1].Close
        if prev <= 0 || c.Close <= 0 {
            continue
        }
        out[i].LogReturn = math.Log(c.Close / prev)
    }
    return out
}

