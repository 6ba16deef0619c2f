// Package metrics exposes Prometheus metrics for the history rendering path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the history service's Prometheus collectors.
type Metrics struct {
	EventsRendered  *prometheus.CounterVec
	FallbackRenders prometheus.Counter
	FetchDuration   prometheus.Histogram
}

// New creates and registers the collectors on the default registry. Call once
// at startup; services tolerate a nil *Metrics so tests can skip registration.
func New() *Metrics {
	return &Metrics{
		EventsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "movehistory_events_rendered_total",
			Help: "History events rendered, by details type.",
		}, []string{"details_type"}),
		FallbackRenders: promauto.NewCounter(prometheus.CounterOpts{
			Name: "movehistory_fallback_renders_total",
			Help: "Records no declared template matched, rendered via the undefined fallback.",
		}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "movehistory_fetch_duration_seconds",
			Help:    "Time to fetch and render one page of move history.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveRender records one rendered event.
func (m *Metrics) ObserveRender(detailsType string, fallback bool) {
	if m == nil {
		return
	}
	m.EventsRendered.WithLabelValues(detailsType).Inc()
	if fallback {
		m.FallbackRenders.Inc()
	}
}

// ObserveFetch records one page fetch duration in seconds.
func (m *Metrics) ObserveFetch(seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(seconds)
}
