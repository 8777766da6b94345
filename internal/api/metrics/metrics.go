// Package metrics defines and registers all custom Prometheus metrics for
// the portfolio backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (generic; the failed factor is never a label)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks sessions currently held in the registry. Decremented
// on logout and on lazy expiry, so it can overcount sessions that idle out
// and are never touched again.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of sessions currently registered.",
	},
)

// SessionTimeoutsTotal counts sessions discovered expired on access.
var SessionTimeoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_timeouts_total",
		Help:      "Total number of sessions that lapsed past the idle timeout.",
	},
)

// ── Maintenance gate metrics ──────────────────────────────────────────────────

// MaintenanceRequestsTotal counts gate decisions while the flag is active.
// Label:
//   - outcome: "bypass" (valid admin session) or "redirect"
var MaintenanceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_requests_total",
		Help:      "Total number of gated requests while maintenance is active, by outcome.",
	},
	[]string{"outcome"},
)

// ── Asset worker metrics ──────────────────────────────────────────────────────

// AssetJobsEnqueuedTotal counts remote deletions handed to the dispatcher.
// Label:
//   - category: "personal" or "commission"
var AssetJobsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_jobs_enqueued_total",
		Help:      "Total number of remote asset deletions enqueued, by gallery category.",
	},
	[]string{"category"},
)

// AssetJobsFailedTotal counts deletions the image host rejected.
var AssetJobsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_jobs_failed_total",
		Help:      "Total number of remote asset deletions that failed.",
	},
)
