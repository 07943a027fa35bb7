package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sartorproj/gofreq/freq"
)

// Metrics holds the Prometheus collectors of the analysis service.
type Metrics struct {
	Requests      *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freq_requests_total",
				Help: "Analysis requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "freq_stage_duration_seconds",
				Help:    "Duration of each decomposition stage",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		StageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freq_stage_errors_total",
				Help: "Failed decomposition stages",
			},
			[]string{"stage"},
		),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "freq_cache_hits_total",
			Help: "Responses served from the result cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "freq_cache_misses_total",
			Help: "Requests computed because no cached result existed",
		}),
	}
}

// ObserveStage records one stage run. Its signature matches
// freq.StageObserver.
func (m *Metrics) ObserveStage(stage freq.Stage, elapsed time.Duration, err error) {
	m.StageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	if err != nil {
		m.StageErrors.WithLabelValues(string(stage)).Inc()
	}
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(endpoint, outcome string) {
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCache counts a cache lookup.
func (m *Metrics) RecordCache(hit bool) {
	if hit {
		m.CacheHits.Inc()
		return
	}
	m.CacheMisses.Inc()
}
