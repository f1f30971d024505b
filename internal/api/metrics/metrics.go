// Package metrics defines and registers the custom Prometheus metrics of the
// PartsQuote gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "partsquote"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts gate decisions.
// Labels:
//   - outcome: "allow" or "redirect_to_login"
//   - route: "public", "bypass" or "protected"
//   - reason: failure label (e.g. "missing", "expired", "role_mismatch"), empty on allow
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gate",
		Name:      "decisions_total",
		Help:      "Total number of route authorization decisions.",
	},
	[]string{"outcome", "route", "reason"},
)

// GateDecisionDuration measures how long a gate decision takes, including
// credential verification.
// Label:
//   - outcome: "allow" or "redirect_to_login"
var GateDecisionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gate",
		Name:      "decision_duration_seconds",
		Help:      "Duration of route authorization decisions.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
	},
	[]string{"outcome"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts on the built-in issuer.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Access audit metrics ──────────────────────────────────────────────────────

// AccessEventsRecordedTotal counts access events handed to storage.
// Labels:
//   - kind: "denied", "signed_in" or "signed_out"
//   - result: "ok" or "error"
var AccessEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "events_recorded_total",
		Help:      "Total number of access events written to storage.",
	},
	[]string{"kind", "result"},
)

// AccessEventsDroppedTotal counts events the dispatcher refused.
// Label:
//   - reason: "full" (worker buffer full) or "closed" (dispatcher shut down)
var AccessEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "events_dropped_total",
		Help:      "Total number of access events dropped before recording.",
	},
	[]string{"reason"},
)

// AccessEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AccessEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "queue_depth",
		Help:      "Current number of access events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
