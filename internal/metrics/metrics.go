// Package metrics defines and registers the custom Prometheus metrics of the
// schools web front-end. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto. HTTP request metrics come from
// echoprometheus and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "schools_web"

// ── Tenant metrics ────────────────────────────────────────────────────────────

// TenantRedirectsTotal counts requests redirected to the default tenant host.
// Label:
//   - reason: "dev_token" (host is the development token) or "no_subdomain"
var TenantRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenant_redirects_total",
		Help:      "Total number of requests redirected to the default tenant host.",
	},
	[]string{"reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - operation: "login", "register" or "logout"
//   - result: "success", "failure" or "invalid" (rejected before any API call)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts outbound calls to the external API.
// Labels:
//   - operation: logical call name (e.g. "competitions.list", "auth.login")
//   - code: HTTP status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the external API.",
	},
	[]string{"operation", "code"},
)

// BackendRequestDuration measures outbound call latency.
// Label:
//   - operation: logical call name
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the external API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Competition metrics ───────────────────────────────────────────────────────

// CompetitionMutationsTotal counts competition writes.
// Labels:
//   - action: "create", "update" or "delete"
//   - result: "success", "forbidden" or "error"
var CompetitionMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "competition_mutations_total",
		Help:      "Total number of competition mutations, by action and result.",
	},
	[]string{"action", "result"},
)

// CompetitionCacheTotal counts list cache lookups.
// Label:
//   - result: "hit" or "miss"
var CompetitionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "competition_cache_total",
		Help:      "Total number of competition list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
