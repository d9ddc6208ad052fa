// Package metrics defines and registers all custom Prometheus metrics for the
// payment service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto, and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment"

// ── Payment metrics ───────────────────────────────────────────────────────────

// UnknownMethod is the method label used for every unregistered method.
const UnknownMethod = "unknown"

// PaymentsTotal counts payment requests by outcome.
// Labels:
//   - method: a registered payment method (e.g. "creditCard") or UnknownMethod
//   - result: "recorded", "unknown_method" or "error"
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of payment requests, by method and result.",
	},
	[]string{"method", "result"},
)

// PaymentDuration measures the strategy call plus the transaction insert.
var PaymentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processing_duration_seconds",
		Help:      "Duration of payment execution from dispatch to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthResultsTotal counts authentication gate decisions.
// Label:
//   - status: "unauthenticated", "authenticated" or "invalid"
var AuthResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_results_total",
		Help:      "Total number of authentication gate decisions, by status.",
	},
	[]string{"status"},
)

// TokensIssuedTotal counts tokens returned by the login endpoint.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerQueueDepth tracks the number of transactions waiting in each ledger worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LedgerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_queue_depth",
		Help:      "Current number of transactions pending in each ledger worker channel.",
	},
	[]string{"worker_id"},
)

// LedgerWritesTotal counts ledger updates.
// Label:
//   - result: "ok", "error" or "dropped"
var LedgerWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_writes_total",
		Help:      "Total number of ledger counter updates, by result.",
	},
	[]string{"result"},
)
