// Package metrics defines and registers the custom Prometheus metrics for the
// marketplace API. All collectors are registered with the default registry on
// package initialisation and exposed on /metrics. Per-request HTTP metrics come
// from the echoprometheus middleware under the same namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every marketplace collector.
const Namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login outcomes.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "conflict", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// GateRejectionsTotal counts requests rejected by an auth pipeline stage.
// Labels:
//   - stage: "authenticate" or "authorize"
//   - reason: "no_token", "invalid_token", "unknown_account" or "forbidden"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the auth gates.",
	},
	[]string{"stage", "reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful product writes.
// Label:
//   - operation: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product writes, by operation.",
	},
	[]string{"operation"},
)
