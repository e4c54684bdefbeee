package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrors counts failed statements, excluding expected misses and duplicate keys.
	DatabaseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_database_errors_total",
		Help: "Total number of failed database statements",
	})

	// RegistryConflictRetries counts get-or-create calls that lost an insert race.
	RegistryConflictRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_registry_conflict_retries_total",
		Help: "Get-or-create calls that hit a unique violation and re-read the winner",
	}, []string{"table"})

	// ServiceOperations counts content service calls by operation and outcome.
	ServiceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_service_operations_total",
		Help: "Content service calls by operation and outcome",
	}, []string{"operation", "outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordOutcome increments ServiceOperations with "ok" or the error's class.
func RecordOutcome(operation string, err error, classify func(error) string) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if classify != nil {
			outcome = classify(err)
		}
	}
	ServiceOperations.WithLabelValues(operation, outcome).Inc()
}
