// Package metrics defines all custom Prometheus metrics for the admin
// console. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// RemoteCallsTotal counts calls against the remote resource service.
// Labels:
//   - entity: "users" or "tasks"
//   - operation: "list", "create", "update", "delete"
//   - outcome: "ok" or "error"
var RemoteCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_calls_total",
		Help:      "Total number of calls to the remote resource service.",
	},
	[]string{"entity", "operation", "outcome"},
)

// RemoteCallDuration measures remote call latency end-to-end.
var RemoteCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_call_duration_seconds",
		Help:      "Duration of remote resource service calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"entity", "operation"},
)

// NotificationsPushedTotal counts transient notifications by severity.
var NotificationsPushedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_pushed_total",
		Help:      "Total number of transient notifications pushed.",
	},
	[]string{"severity"},
)

// SessionsActive tracks the number of live console sessions.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of console sessions currently established.",
	},
)
