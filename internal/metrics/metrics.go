// Package metrics provides the Prometheus registry for the results collector.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "results_collector"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Total number of pipeline runs by outcome",
	}, []string{"status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of remote client circuit breaker trips",
	})
)

// Gauge metrics
var (
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time at which the last pipeline run finished",
	})
)

// Histogram metrics
var (
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of pipeline runs in seconds",
		Buckets:   []float64{1, 10, 30, 60, 300, 900, 1800, 3600, 7200},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RunsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(LastRunTimestamp)
		registry.MustRegister(RunDuration)

		// Ingest metrics
		registry.MustRegister(EventsTotal)
		registry.MustRegister(ResultsTotal)
		registry.MustRegister(TeamsUpsertedTotal)
		registry.MustRegister(SessionsTotal)
		registry.MustRegister(SeasonsTotal)
		registry.MustRegister(ReferenceRowsInsertedTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRun records a finished pipeline run.
// status should be one of: "success", "failure"
func RecordRun(status string, durationSeconds float64, finishedUnix float64) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(durationSeconds)
	LastRunTimestamp.Set(finishedUnix)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}
