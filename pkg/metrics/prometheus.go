package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal      *prometheus.CounterVec
	eventsTotal    *prometheus.CounterVec
	invalidWindows *prometheus.CounterVec
	zcr            *prometheus.GaugeVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a recorder registered on reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pairsignal_runs_total",
				Help: "Pipeline runs by pair and status",
			},
			[]string{"pair", "status"},
		),
		eventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pairsignal_events_total",
				Help: "Labeled events by pair and kind",
			},
			[]string{"pair", "kind"},
		),
		invalidWindows: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pairsignal_invalid_windows_total",
				Help: "Regression windows flagged invalid",
			},
			[]string{"pair"},
		),
		zcr: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pairsignal_zero_crossing_rate",
				Help: "Zero-crossing rate of the distance series of the last run",
			},
			[]string{"pair"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pairsignal_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pairsignal_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRun counts a finished run.
func (r *Recorder) RecordRun(pair, status string) {
	r.runsTotal.WithLabelValues(pair, status).Inc()
}

// RecordEvents adds a run's win and loss counts.
func (r *Recorder) RecordEvents(pair string, wins, losses int) {
	r.eventsTotal.WithLabelValues(pair, "win").Add(float64(wins))
	r.eventsTotal.WithLabelValues(pair, "loss").Add(float64(losses))
}

func (r *Recorder) RecordInvalidWindows(pair string, n int) {
	r.invalidWindows.WithLabelValues(pair).Add(float64(n))
}

func (r *Recorder) RecordZeroCrossingRate(pair string, zcr float64) {
	r.zcr.WithLabelValues(pair).Set(zcr)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
