package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
// Parsed times are returned in UTC.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t.UTC(), true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t.UTC(), true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0).UTC(), true
    }
    return time.Time{}, false
}

// TimeframeDuration returns the bucket width of tf, or one minute for unknown values.
func TimeframeDuration(tf string) time.Duration {
    switch tf {
    case "1s":
        return time.Second
    case "1m":
        return time.Minute
    case "5m":
        return 5 * time.Minute
    case "1h":
        return time.Hour
    default:
        return time.Minute
    }
}

// AlignFromTo rounds the time range down to bucket boundaries for the timeframe.
func AlignFromTo(from, to time.Time, tf string) (time.Time, time.Time) {
    d := TimeframeDuration(tf)
    return from.Truncate(d), to.Truncate(d)
}
