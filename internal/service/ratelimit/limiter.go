package ratelimit

import (
    "sync"
    "time"

    "golang.org/x/time/rate"
)

// buckets idle this long are dropped once the map grows past maxKeys
const (
    maxKeys = 10000
    idleTTL = 10 * time.Minute
)

type client struct {
    lim  *rate.Limiter
    seen time.Time
}

// Limiter hands out one token bucket per key, refilled at rps up to burst.
type Limiter struct {
    mu    sync.Mutex
    m     map[string]*client
    rps   rate.Limit
    burst int
    now   func() time.Time
}

func New(rps float64, burst int) *Limiter {
    if burst < 1 {
        burst = 1
    }
    return &Limiter{m: make(map[string]*client), rps: rate.Limit(rps), burst: burst, now: time.Now}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
    now := l.now()
    l.mu.Lock()
    c, ok := l.m[key]
    if !ok {
        if len(l.m) >= maxKeys {
            l.sweepLocked(now.Add(-idleTTL))
        }
        c = &client{lim: rate.NewLimiter(l.rps, l.burst)}
        l.m[key] = c
    }
    c.seen = now
    l.mu.Unlock()
    return c.lim.AllowN(now, 1)
}

// Sweep drops buckets idle for longer than idle and returns how many were removed.
func (l *Limiter) Sweep(idle time.Duration) int {
    cutoff := l.now().Add(-idle)
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.sweepLocked(cutoff)
}

func (l *Limiter) sweepLocked(cutoff time.Time) int {
    n := 0
    for k, c := range l.m {
        if c.seen.Before(cutoff) {
            delete(l.m, k)
            n++
        }
    }
    return n
}
