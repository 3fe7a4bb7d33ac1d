// Package metrics exposes the prometheus collectors of the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can live in one process
// (tests build one per server).
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	TransitionsTotal           *prometheus.CounterVec
	SideEffectsTotal           *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		TransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_transitions_total",
				Help: "Accepted status transitions per state machine.",
			},
			[]string{"machine", "from", "to"},
		),
		SideEffectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "side_effects_total",
				Help: "Notification, audit and email deliveries by result.",
			},
			[]string{"kind", "result"},
		),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.TransitionsTotal,
		m.SideEffectsTotal,
	)
	return m
}

// Handler serves the registry in the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Transition counts an accepted state change. Safe on a nil receiver.
func (m *Metrics) Transition(machine, from, to string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(machine, from, to).Inc()
}

// SideEffect counts one delivery attempt. Safe on a nil receiver.
func (m *Metrics) SideEffect(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SideEffectsTotal.WithLabelValues(kind, result).Inc()
}
