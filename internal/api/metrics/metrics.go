// Package metrics defines and registers all custom Prometheus metrics for
// the back-office gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Upstream client metrics ───────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests forwarded to the upstream backend.
// Labels:
//   - area: backend sub-area (actors, tags, auth, agents, media, invites)
//   - code: HTTP status returned by the upstream, or "network" on no response
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the upstream backend.",
	},
	[]string{"area", "code"},
)

// UpstreamRequestDuration measures upstream round-trip time per sub-area.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream requests from send to full body read.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"area"},
)

// UpstreamReauthTotal counts 401-triggered silent re-validations.
// Label:
//   - result: "recovered" (re-validation passed, original retried) or
//     "failed" (session declared dead)
var UpstreamReauthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_reauth_total",
		Help:      "Total number of silent token re-validations after an upstream 401.",
	},
	[]string{"result"},
)

// ── Reconciliation metrics ────────────────────────────────────────────────────

// TagBackfillTotal counts tag backfill lookups.
// Labels:
//   - mode: "batch" (one call for the whole page) or "fallback" (per-entity)
//   - result: "ok" or "degraded" (lookup failed, tags defaulted to empty)
var TagBackfillTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tag_backfill_total",
		Help:      "Total number of tag backfill lookups, by mode and outcome.",
	},
	[]string{"mode", "result"},
)

// ListShapeTotal counts which response variant the list decoder detected.
// Label:
//   - variant: "array", "items_total", or "legacy_scan"
var ListShapeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_shape_total",
		Help:      "Total list responses decoded, by detected shape variant.",
	},
	[]string{"variant"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// GuardDecisionsTotal counts route-guard outcomes.
// Label:
//   - decision: "allow", "login", "home", or "retry"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total authorization guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each audit dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit entries that failed to persist.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit entries that could not be written.",
	},
)
