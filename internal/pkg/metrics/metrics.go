// Package metrics defines and registers all custom Prometheus metrics for the
// shop API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// ClientAuthTotal counts application (client id/secret) authentication attempts.
// Label:
//   - result: "ok" or "rejected"
var ClientAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_auth_total",
		Help:      "Total number of client credential checks, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts user login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of user login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts successful cart mutations.
// Label:
//   - op: "add", "replace" or "clear"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "ok" or "empty_cart"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Order event metrics ───────────────────────────────────────────────────────

// OrderEventsQueueDepth tracks the number of order events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrderEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// OrderEventsErrorsTotal counts order events whose handler returned an error.
var OrderEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_errors_total",
		Help:      "Total number of order events that failed processing.",
	},
)

// OrderEventDuration measures how long the notifier takes per event.
var OrderEventDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_event_duration_seconds",
		Help:      "Duration of order event handling.",
		Buckets:   prometheus.DefBuckets,
	},
)

// OrderUnits observes the number of units per placed order.
var OrderUnits = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_units",
		Help:      "Number of product units per placed order.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 50},
	},
)

// OrderValue observes the catalog total of each placed order.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Catalog value of each placed order.",
		Buckets:   prometheus.ExponentialBuckets(50, 2, 8),
	},
)
