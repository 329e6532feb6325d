// Package metrics defines and registers all custom Prometheus metrics for
// the library service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoanEventsProcessedTotal counts loan events recorded in the activity trail.
// Label:
//   - action: "borrowed" or "returned"
var LoanEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loan_events_processed_total",
		Help:      "Total number of loan events successfully recorded.",
	},
	[]string{"action"},
)

// LoanEventsErrorsTotal counts loan events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var LoanEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loan_events_errors_total",
		Help:      "Total number of loan events that failed processing.",
	},
	[]string{"reason"},
)

// LoanEventsQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LoanEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "loan_events_queue_depth",
		Help:      "Current number of loan events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
