// Package metrics exposes form submission and backend call metrics in the
// prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillbridge/internal/backend"
)

type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	backend     *prometheus.HistogramVec
}

// New creates metrics on a private registry, so that several apps (tests) can
// live in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Name:      "form_submissions_total",
			Help:      "Form submissions by form and outcome.",
		}, []string{"form", "outcome"}),
		backend: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skillbridge",
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of backend calls by operation and result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "result"}),
	}

	m.registry.MustRegister(
		m.submissions,
		m.backend,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// CountSubmission records one submission of formName ending in outcome.
func (m *Metrics) CountSubmission(formName, outcome string) {
	m.submissions.WithLabelValues(formName, outcome).Inc()
}

// ObserveBackend implements backend.Observer.
func (m *Metrics) ObserveBackend(op string, elapsed time.Duration, err error) {
	m.backend.WithLabelValues(op, result(err)).Observe(elapsed.Seconds())
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case backend.IsRejection(err):
		return "rejected"
	}
	return "error"
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
