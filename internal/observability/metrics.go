package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_login_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// WorkflowSteps tracks outcomes of each login workflow step
	WorkflowSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_login_workflow_steps_total",
			Help: "Number of login workflow step executions",
		},
		[]string{"step", "status"},
	)

	// UpstreamRequests tracks calls to the identity gateway, registry and
	// notification endpoints
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_login_upstream_requests_total",
			Help: "Number of upstream API requests",
		},
		[]string{"service", "status"},
	)

	// UpstreamRequestDuration tracks upstream call latency
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_login_upstream_request_duration_seconds",
			Help: "Duration of upstream API requests in seconds",
		},
		[]string{"service"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_login_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// Registrations tracks two-phase registration outcomes
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_login_registrations_total",
			Help: "Number of registrations parked, confirmed or expired",
		},
		[]string{"outcome"},
	)

	// NotificationsDispatched tracks push dispatch outcomes
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_login_notifications_dispatched_total",
			Help: "Number of notification dispatch attempts",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_login_active_connections",
			Help: "Number of active connections",
		},
	)
)
