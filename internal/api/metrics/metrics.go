// Package metrics defines and registers all custom Prometheus metrics for the
// employee management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register themselves with the default Prometheus registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ems"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts account creations.
// Label:
//   - role: "admin" or "employee"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Leave metrics ─────────────────────────────────────────────────────────────

// LeaveRequestsTotal counts submitted leave requests.
// Label:
//   - type: the leave type requested (e.g. "sick", "vacation")
var LeaveRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_requests_total",
		Help:      "Total number of leave requests submitted, by leave type.",
	},
	[]string{"type"},
)

// LeaveDecisionsTotal counts admin decisions on leave requests.
// Label:
//   - status: "approved" or "rejected"
var LeaveDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decisions_total",
		Help:      "Total number of leave request decisions, by resulting status.",
	},
	[]string{"status"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksAssignedTotal counts task assignments, including reassignments.
var TasksAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_assigned_total",
		Help:      "Total number of task assignments, including reassignments.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts notifications handed to the dispatcher.
// Label:
//   - type: the notification type (e.g. "leave_status", "task_assignment")
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notifications enqueued for delivery, by type.",
	},
	[]string{"type"},
)

// ── Relay metrics ─────────────────────────────────────────────────────────────

// RelayConnections tracks the number of open websocket connections.
var RelayConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "relay_connections",
		Help:      "Current number of open websocket relay connections.",
	},
)

// ── Attendance metrics ────────────────────────────────────────────────────────

// ClockEventsTotal counts clock-in and clock-out operations.
// Label:
//   - direction: "in" or "out"
var ClockEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_events_total",
		Help:      "Total number of attendance clock events, by direction.",
	},
	[]string{"direction"},
)
