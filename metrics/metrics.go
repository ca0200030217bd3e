// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthtracker_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthtracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Registrations is labelled by outcome: ok, validation, duplicate, error.
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthtracker_registrations_total",
			Help: "Registration attempts by outcome",
		},
		[]string{"result"},
	)

	// Logins is labelled by outcome: ok, invalid, error.
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthtracker_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	// EntriesCreated is labelled by kind: workout, nutrition.
	EntriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthtracker_entries_created_total",
			Help: "Workout and nutrition entries created",
		},
		[]string{"kind"},
	)

	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthtracker_realtime_clients",
			Help: "Open activity websocket connections",
		},
	)
)
