// Package metrics defines and registers all custom Prometheus metrics for the
// realty platform. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realty"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthIssuedTotal counts tokens issued on successful register/login.
// Label:
//   - role: the role embedded in the token ("user", "agent", "admin")
var AuthIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_issued_total",
		Help:      "Total number of tokens issued, by role.",
	},
	[]string{"role"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "unknown_user" or "bad_password"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Peer call metrics ─────────────────────────────────────────────────────────

// PeerCallsTotal counts outbound calls to peer services.
// Labels:
//   - peer: logical peer name (e.g. "property-service")
//   - op: method and path (e.g. "GET /properties")
//   - outcome: "ok" or "error"
var PeerCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "peer_calls_total",
		Help:      "Total number of outbound peer service calls, by peer, op and outcome.",
	},
	[]string{"peer", "op", "outcome"},
)

// PeerCallDuration measures how long a single peer call takes, including
// connection setup and body decoding.
// Label:
//   - peer: logical peer name
var PeerCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "peer_call_duration_seconds",
		Help:      "Duration of outbound peer service calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"peer"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// AnalyticsEventsTotal counts tracked analytics events.
// Label:
//   - event_type: the event type as reported by the caller, or "unknown"
var AnalyticsEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_events_total",
		Help:      "Total number of analytics events tracked, by event type.",
	},
	[]string{"event_type"},
)

// AnalyticsDedupTotal counts view-deduplication decisions.
// Label:
//   - result: "hit" (duplicate view, dropped) or "miss" (new view, recorded)
var AnalyticsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_dedup_total",
		Help:      "Total number of view deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Dispatcher metrics ────────────────────────────────────────────────────────

// SideCallsQueueDepth tracks the current number of best-effort side calls
// waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SideCallsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "side_calls_queue_depth",
		Help:      "Current number of side calls pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SideCallsDroppedTotal counts side calls dropped because a worker queue was full.
var SideCallsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "side_calls_dropped_total",
		Help:      "Total number of best-effort side calls dropped due to a full queue.",
	},
)

// ── Property metrics ──────────────────────────────────────────────────────────

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - property_type: "apartment", "house", "commercial", or "land"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by type.",
	},
	[]string{"property_type"},
)
