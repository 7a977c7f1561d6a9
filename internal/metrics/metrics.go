// Package metrics exposes Prometheus counters for the booking assistant.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection on a private registry.
type Metrics struct {
	extractions       *prometheus.CounterVec
	extractionLatency *prometheus.HistogramVec
	bookings          *prometheus.CounterVec
	resolutions       *prometheus.CounterVec
	busyRejections    prometheus.Counter
	registry          *prometheus.Registry
}

// New creates a new Metrics instance with a private Prometheus registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	extractions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_extractions_total",
			Help: "Extractor calls by provider and outcome (text, intent, error)",
		},
		[]string{"provider", "outcome"},
	)

	extractionLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_extraction_duration_seconds",
			Help:    "Extractor call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	bookings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_bookings_total",
			Help: "Booking attempts by outcome (created, rejected, failed)",
		},
		[]string{"outcome"},
	)

	resolutions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_device_resolutions_total",
			Help: "Device name lookups by kind and result (resolved, unresolved)",
		},
		[]string{"kind", "result"},
	)

	busy := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_busy_rejections_total",
		Help: "Submissions rejected because an extraction was already in flight",
	})

	registry.MustRegister(extractions, extractionLatency, bookings, resolutions, busy)

	return &Metrics{
		extractions:       extractions,
		extractionLatency: extractionLatency,
		bookings:          bookings,
		resolutions:       resolutions,
		busyRejections:    busy,
		registry:          registry,
	}
}

// ObserveExtraction records one extractor call.
func (m *Metrics) ObserveExtraction(provider, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(provider, outcome).Inc()
	m.extractionLatency.WithLabelValues(provider).Observe(took.Seconds())
}

// ObserveBooking records the outcome of one booking attempt.
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

// ObserveResolution records one device name lookup.
func (m *Metrics) ObserveResolution(kind string, resolved bool) {
	if m == nil {
		return
	}
	result := "unresolved"
	if resolved {
		result = "resolved"
	}
	m.resolutions.WithLabelValues(kind, result).Inc()
}

// ObserveBusy records a rejected concurrent submission.
func (m *Metrics) ObserveBusy() {
	if m == nil {
		return
	}
	m.busyRejections.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
