// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package metrics provides Prometheus instrumentation for the bridge.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bridge.
type Metrics struct {
	// Connection metrics
	ActiveConnections  *prometheus.GaugeVec
	ConnectionsTotal   *prometheus.CounterVec
	ConnectionDuration *prometheus.HistogramVec

	// Auth metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Relay metrics
	MessagesRelayed  *prometheus.CounterVec
	EnvelopesDropped *prometheus.CounterVec

	// Identity service metrics
	IdentityCalls   *prometheus.CounterVec
	IdentityLatency *prometheus.HistogramVec

	// Rate limiter metrics
	RateLimitedRequests *prometheus.CounterVec
}

// New creates a new Metrics instance with all counters, gauges, and histograms.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "mbridge"
	}

	m := &Metrics{
		ActiveConnections: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_connections",
				Help:      "Number of currently active client connections",
			},
			[]string{"protocol"},
		),
		ConnectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connections_total",
				Help:      "Total number of client connections",
			},
			[]string{"protocol", "status"},
		),
		ConnectionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "connection_duration_seconds",
				Help:      "Connection duration in seconds",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 600},
			},
			[]string{"protocol"},
		),
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of authorization attempts",
			},
			[]string{"protocol", "operation"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Total number of authorization failures",
			},
			[]string{"protocol", "operation"},
		),
		MessagesRelayed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_relayed_total",
				Help:      "Total number of messages relayed between broker and bus",
			},
			[]string{"direction"},
		),
		EnvelopesDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelopes_dropped_total",
				Help:      "Total number of bus envelopes dropped before forwarding",
			},
			[]string{"reason"},
		),
		IdentityCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "identity_calls_total",
				Help:      "Total number of identity service calls",
			},
			[]string{"method", "status"},
		),
		IdentityLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "identity_latency_seconds",
				Help:      "Identity service call latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RateLimitedRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Total number of rate limited requests",
			},
			[]string{"protocol", "limiter_type"},
		),
	}

	return m
}

// ObserveAuth records an authorization attempt and its outcome.
func (m *Metrics) ObserveAuth(protocol, operation string, err error) {
	m.AuthAttempts.WithLabelValues(protocol, operation).Inc()
	if err != nil {
		m.AuthFailures.WithLabelValues(protocol, operation).Inc()
	}
}

// ObserveIdentity tracks one identity service call.
func (m *Metrics) ObserveIdentity(method string, f func() error) error {
	start := time.Now()
	err := f()
	m.IdentityLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	m.IdentityCalls.WithLabelValues(method, status).Inc()

	return err
}
