// Package metrics exposes signup counters in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-skillswap/pkg/signup"
)

const namespace = "skillswap"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	events      *prometheus.CounterVec
	openModals  prometheus.Gauge
}

var _ signup.Observer = (*Metrics)(nil)

// New registers the signup collectors plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signup",
			Name:      "submissions_total",
			Help:      "Signup submissions by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "signup",
			Name:      "identity_request_seconds",
			Help:      "Time spent waiting on the identity service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "modal",
			Name:      "events_total",
			Help:      "Signup modal events by action and result.",
		}, []string{"action", "result"}),
		openModals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "modal",
			Name:      "open",
			Help:      "Signup modals currently open.",
		}),
	}
	m.registry.MustRegister(
		m.submissions,
		m.latency,
		m.events,
		m.openModals,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSubmission records one resolved submission.
func (m *Metrics) ObserveSubmission(kind signup.OutcomeKind, elapsed time.Duration) {
	m.submissions.WithLabelValues(string(kind)).Inc()
	m.latency.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// CountEvent records one modal event. result is "applied", "noop",
// "rejected" or a submission outcome.
func (m *Metrics) CountEvent(action, result string) {
	m.events.WithLabelValues(action, result).Inc()
}

// SetOpenModals updates the open modal gauge.
func (m *Metrics) SetOpenModals(n int) {
	m.openModals.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
