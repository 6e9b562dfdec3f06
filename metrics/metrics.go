// Package metrics exposes Prometheus collectors for engine runs, maze
// generation and visualizer sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes.
const (
	OutcomeFound     = "found"
	OutcomeExhausted = "exhausted"
	OutcomeStalled   = "stalled"
)

// Maze sources.
const (
	SourceRemote   = "remote"
	SourceCache    = "cache"
	SourceFallback = "fallback"
	SourceLocal    = "local"
)

// Metrics holds all Prometheus metrics for the visualizer.
type Metrics struct {
	engineSteps *prometheus.CounterVec
	engineRuns  *prometheus.CounterVec

	mazeGenerations *prometheus.CounterVec

	sessionsActive prometheus.Gauge

	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		engineSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathviz_engine_steps_total",
				Help: "Total number of engine steps taken by algorithm",
			},
			[]string{"algorithm"},
		),

		engineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathviz_engine_runs_total",
				Help: "Total number of finished engine runs by algorithm and outcome",
			},
			[]string{"algorithm", "outcome"},
		),

		mazeGenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathviz_maze_generations_total",
				Help: "Total number of mazes served by source",
			},
			[]string{"source"},
		),

		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pathviz_sessions_active",
				Help: "Number of currently open visualizer sessions",
			},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathviz_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.engineSteps,
		m.engineRuns,
		m.mazeGenerations,
		m.sessionsActive,
		m.httpRequestDuration,
	)

	return m
}

// RecordStep records one engine step.
func (m *Metrics) RecordStep(algorithm string) {
	m.engineSteps.WithLabelValues(algorithm).Inc()
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(algorithm, outcome string) {
	m.engineRuns.WithLabelValues(algorithm, outcome).Inc()
}

// RecordGeneration records a maze served from source.
func (m *Metrics) RecordGeneration(source string) {
	m.mazeGenerations.WithLabelValues(source).Inc()
}

func (m *Metrics) SessionOpened() { m.sessionsActive.Inc() }

func (m *Metrics) SessionClosed() { m.sessionsActive.Dec() }

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
