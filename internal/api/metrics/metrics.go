// Package metrics defines and registers all custom Prometheus metrics for the
// Shipsy API. It is the single source of truth for metric names, labels, and
// help strings; HTTP latency is covered separately by the echoprometheus
// middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shipsy"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token rotations.
// Label:
//   - result: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token rotations, by result.",
	},
	[]string{"result"},
)

// RecordsCreatedTotal counts created records.
// Label:
//   - entity: "customer" or "shipment"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by entity.",
	},
	[]string{"entity"},
)

// BulkDeletesTotal counts bulk-delete requests.
// Labels:
//   - entity: "customer" or "shipment"
//   - result: "success" or "rejected"
var BulkDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_deletes_total",
		Help:      "Total number of bulk-delete requests, by entity and result.",
	},
	[]string{"entity", "result"},
)
