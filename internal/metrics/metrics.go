// Package metrics exposes Prometheus collectors for simulations served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

var (
	// Simulations counts mode simulations by outcome.
	Simulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulations_total",
			Help: "Number of payment mode simulations",
		},
		[]string{"mode", "status"},
	)

	// Requests counts API requests by endpoint and outcome.
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"endpoint", "status"},
	)

	// Duration observes how long each API request took to compute.
	Duration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simulation_duration_seconds",
			Help:    "Time spent computing simulations per endpoint",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"endpoint"},
	)
)

// ObserveSimulation records one simulation of mode.
func ObserveSimulation(mode string, err error) {
	Simulations.WithLabelValues(mode, status(err)).Inc()
}

// ObserveRequest records one request to endpoint that started at start.
func ObserveRequest(endpoint, status string, start time.Time) {
	Requests.WithLabelValues(endpoint, status).Inc()
	Duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
