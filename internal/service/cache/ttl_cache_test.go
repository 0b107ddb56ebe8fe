package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	clock := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[int](10)
	c.now = func() time.Time { return clock }

	c.Set("a", 1, time.Minute)
	c.Set("forever", 2, 0)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %v %v", v, ok)
	}
	clock = clock.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expiry")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Fatalf("entries without ttl must not expire")
	}
}

func TestTTLCacheEvictsWhenFull(t *testing.T) {
	clock := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](2)
	c.now = func() time.Time { return clock }

	c.Set("soon", "x", time.Minute)
	c.Set("later", "y", time.Hour)
	c.Set("new", "z", time.Hour)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get("soon"); ok {
		t.Fatalf("entry closest to expiry should be evicted")
	}
	if _, ok := c.Get("new"); !ok {
		t.Fatalf("new entry missing")
	}
}
