package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeStore      = "store_error"
	OutcomeUpload     = "upload_error"
	OutcomeError      = "error"
)

// Metrics holds the venue writer collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	saves     *prometheus.CounterVec
	reconcile *prometheus.HistogramVec
	uploads   *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "venue_saves_total",
			Help: "Venue aggregate saves by outcome.",
		}, []string{"outcome"}),
		reconcile: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "venue_reconcile_duration_seconds",
			Help:    "Duration of child collection reconciliation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "venue_photo_uploads_total",
			Help: "Photo uploads to object storage by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(m.saves, m.reconcile, m.uploads)
	return m
}

func (m *Metrics) ObserveSave(outcome string) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveReconcile(collection, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reconcile.WithLabelValues(collection, outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
