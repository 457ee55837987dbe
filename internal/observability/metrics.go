// Package observability holds the client's prometheus collectors and logging setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequests counts remote API calls by operation and outcome.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogclient_gateway_requests_total",
		Help: "Total number of remote API calls by operation and outcome",
	}, []string{"operation", "outcome"})

	// GatewayLatency records remote API latency by operation.
	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogclient_gateway_latency_seconds",
		Help:    "Remote API latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// StaleQueryResults counts page results discarded because a newer query was issued.
	StaleQueryResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogclient_query_stale_results_total",
		Help: "Total number of query results dropped because a newer query was issued",
	}, []string{"surface"})

	// MetricFanouts counts counter results applied to local projections by action.
	MetricFanouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogclient_metric_fanouts_total",
		Help: "Total number of post counter results applied to local projections",
	}, []string{"action"})

	// ViewTasksDropped counts view tracking tasks dropped by a full worker queue.
	ViewTasksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogclient_view_tasks_dropped_total",
		Help: "Total number of view tracking tasks dropped because the queue was full",
	})
)

// TrackGateway returns a function that records the outcome and latency of a remote call
// when called with its error (e.g. defer).
func TrackGateway(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		GatewayRequests.WithLabelValues(operation, outcome).Inc()
		GatewayLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
