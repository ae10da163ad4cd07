// Package metrics exposes Prometheus instruments fed from the eventbus.
// Call Register once at startup to attach the subscribers; the promauto
// instruments register themselves on the default registry at init.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	eventbus "github.com/fernql/fernql/internal/eventbus"
	events "github.com/fernql/fernql/internal/events"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fernql_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fernql_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fernql_graphql_operations_total",
			Help: "Total number of GraphQL operations, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fernql_graphql_operation_duration_seconds",
			Help:    "Duration of GraphQL operation execution in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"type"},
	)

	batchFetchKeys = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fernql_store_batch_fetch_keys",
			Help:    "Number of distinct keys per store batch fetch",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"entity"},
	)

	batchFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fernql_store_batch_fetches_total",
			Help: "Total number of store batch fetches, by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fernql_store_mutations_total",
			Help: "Total number of store mutations, by field and outcome",
		},
		[]string{"field", "outcome"},
	)
)

// Register attaches the metric subscribers to the current eventbus.
func Register() {
	eventbus.Subscribe(func(_ context.Context, e events.HTTPFinish) {
		httpRequestsTotal.WithLabelValues(e.Request.Method, statusClass(e.Status)).Inc()
		httpRequestDuration.WithLabelValues(e.Request.Method).Observe(e.Duration.Seconds())
	})

	eventbus.Subscribe(func(_ context.Context, e events.OperationFinish) {
		operationsTotal.WithLabelValues(e.OperationType, operationOutcome(e)).Inc()
		operationDuration.WithLabelValues(e.OperationType).Observe(e.Duration.Seconds())
	})

	eventbus.Subscribe(func(_ context.Context, e events.BatchFetch) {
		batchFetchKeys.WithLabelValues(e.Entity).Observe(float64(e.Keys))
		batchFetchesTotal.WithLabelValues(e.Entity, errOutcome(e.Err)).Inc()
	})

	eventbus.Subscribe(func(_ context.Context, e events.Mutation) {
		mutationsTotal.WithLabelValues(e.Field, errOutcome(e.Err)).Inc()
	})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func operationOutcome(e events.OperationFinish) string {
	switch {
	case e.Rejected:
		return "rejected"
	case len(e.Errors) > 0:
		return "error"
	default:
		return "ok"
	}
}

func errOutcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
