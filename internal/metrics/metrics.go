// Package metrics defines all custom Prometheus metrics for the roster
// console. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry on
// package import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roster"

// APIRequestsTotal counts backend calls issued by the client.
// Labels:
//   - endpoint: logical endpoint name (e.g. "activities", "login", "me")
//   - outcome: "ok", "api_error" (well-formed failure), or "transport"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// APIRequestDuration measures backend call latency per endpoint.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// RefreshesTotal counts roster render cycles.
// Label:
//   - result: "ok" or "failed"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of roster refresh cycles, by result.",
	},
	[]string{"result"},
)

// MutationsTotal counts signup/unregister submissions.
// Labels:
//   - action: "signup" or "unregister"
//   - result: "ok", "rejected" (server said no), or "failed" (transport)
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of roster mutations submitted, by action and result.",
	},
	[]string{"action", "result"},
)
