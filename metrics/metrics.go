// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics provides Prometheus metrics for the call confirmation API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the application registry served on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// HTTP

var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Name:      "http_requests_total",
	Help:      "HTTP requests handled, by method and route",
}, []string{"method", "route"})

var HTTPDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "callcampaign",
	Name:      "http_request_duration_seconds",
	Help:      "Time taken to handle an HTTP request",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
}, []string{"method", "route"})

// Upstream campaign API

var UpstreamRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Subsystem: "upstream",
	Name:      "requests_total",
	Help:      "Requests to the campaign API, by endpoint and status code",
}, []string{"endpoint", "code"})

var UpstreamErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Subsystem: "upstream",
	Name:      "errors_total",
	Help:      "Failed requests to the campaign API, by endpoint",
}, []string{"endpoint"})

var UpstreamDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "callcampaign",
	Subsystem: "upstream",
	Name:      "duration_seconds",
	Help:      "Time taken by requests to the campaign API",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"endpoint"})

// MalformedRecordsTotal counts directory and stats entries skipped as malformed.
var MalformedRecordsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Name:      "malformed_records_total",
	Help:      "Upstream records skipped because they could not be interpreted",
}, []string{"kind"})

// Confirmation flow

var ResolutionFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Subsystem: "confirmation",
	Name:      "resolution_failures_total",
	Help:      "Confirmations whose called district was not in the directory",
})

var EligibleTargets = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "callcampaign",
	Subsystem: "confirmation",
	Name:      "eligible_targets",
	Help:      "Number of districts recommended per confirmation",
	Buckets:   []float64{0, 1, 2, 3},
})

var AlreadyCalledTargetsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Subsystem: "confirmation",
	Name:      "already_called_targets_total",
	Help:      "Recommended districts still inside the call cooldown",
})

var CallsRecordedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callcampaign",
	Subsystem: "sessions",
	Name:      "calls_recorded_total",
	Help:      "Completed calls recorded into session call history",
})

// Handler serves the application registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
