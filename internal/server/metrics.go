package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alnah/go-specsheet/internal/images"
)

// Generation outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeBadRequest  = "bad_request"
	OutcomeUpstream    = "upstream_error"
	OutcomeCancelled   = "cancelled"
	OutcomeFailed      = "failed"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	imageLoads  *prometheus.CounterVec
}

// NewMetrics registers the spec sheet collectors plus the Go and process
// collectors on a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "specsheet_generations_total",
				Help: "Spec sheet requests by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "specsheet_generation_duration_seconds",
			Help:    "Time spent generating one spec sheet PDF, image loads included.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		imageLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "specsheet_image_loads_total",
				Help: "Image loads by purpose and outcome.",
			},
			[]string{"purpose", "outcome"},
		),
	}

	reg.MustRegister(
		m.generations,
		m.duration,
		m.imageLoads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveImage counts one image load. It matches images.Observer so it can
// be handed to specsheet.WithObserver.
func (m *Metrics) ObserveImage(purpose images.Purpose, outcome string) {
	if m == nil {
		return
	}
	m.imageLoads.WithLabelValues(purpose.String(), outcome).Inc()
}

// ObserveGeneration counts one request outcome. Durations are recorded only
// for requests that reached the generator.
func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.duration.Observe(d.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
