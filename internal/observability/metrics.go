// Package observability provides Prometheus collectors and OpenTelemetry
// tracing setup for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investkoree_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ActiveWebSockets is the gauge of active notification websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "investkoree_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investkoree_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// NotificationsPushed counts real-time events pushed by event type.
	NotificationsPushed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investkoree_notifications_pushed_total",
		Help: "Total number of real-time events pushed by event type",
	}, []string{"event"})

	// ModerationDecisions counts accept/deny outcomes.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investkoree_moderation_decisions_total",
		Help: "Total number of moderation decisions by action and outcome",
	}, []string{"action", "outcome"})

	// UploadRejections counts upload gate rejections by reason.
	UploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investkoree_upload_rejections_total",
		Help: "Total number of files rejected by the upload gate",
	}, []string{"reason"})
)
