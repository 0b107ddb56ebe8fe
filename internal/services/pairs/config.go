package pairs

import "runtime"

// Config is the immutable parameter set of one pipeline run.
type Config struct {
	Window              int
	RegressionThreshold float64
	DistanceThreshold   float64
	Horizon             int
	// Workers bounds the regression fan-out; 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig mirrors the H1 EURUSD/GBPUSD exploration settings.
func DefaultConfig() Config {
	return Config{
		Window:              5,
		RegressionThreshold: 0.0002,
		DistanceThreshold:   0.9,
		Horizon:             5,
	}
}

// LabelConfig holds the event labeler's thresholds.
type LabelConfig struct {
	RegressionThreshold float64
	DistanceThreshold   float64
	Horizon             int
}

func (c Config) Label() LabelConfig {
	return LabelConfig{
		RegressionThreshold: c.RegressionThreshold,
		DistanceThreshold:   c.DistanceThreshold,
		Horizon:             c.Horizon,
	}
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) Validate() error {
	if c.Window < 2 {
		return invalid("window", "must be >= 2, got %d", c.Window)
	}
	if c.Workers < 0 {
		return invalid("workers", "must be >= 0, got %d", c.Workers)
	}
	return c.Label().Validate()
}

// Validate rejects thresholds the labeler cannot scan with. NaN fails every check.
func (c LabelConfig) Validate() error {
	if !(c.RegressionThreshold > 0) {
		return invalid("regression_threshold", "must be > 0, got %v", c.RegressionThreshold)
	}
	if !(c.DistanceThreshold > 0 && c.DistanceThreshold < 1) {
		return invalid("distance_threshold", "must be in (0,1), got %v", c.DistanceThreshold)
	}
	if c.Horizon < 2 {
		return invalid("horizon", "must be >= 2, got %d", c.Horizon)
	}
	return nil
}
