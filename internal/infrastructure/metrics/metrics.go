package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dashboard-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Assistant turn counters, labelled by routed tool and outcome
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "assistant_turns_total",
			Help:      "Total assistant turns processed",
		},
		[]string{"tool", "status"},
	)

	// Upstream provider call duration
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "provider_duration_seconds",
			Help:      "Upstream provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// Widget persistence operations
	WidgetOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "widget_operations_total",
			Help:      "Total widget persistence operations",
		},
		[]string{"operation", "status"},
	)

	// Realtime subscribers gauge
	RealtimeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "realtime_subscribers",
			Help:      "Connected realtime change-feed subscribers",
		},
	)

	// Active chat sessions gauge
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dashboard",
			Subsystem: "api",
			Name:      "active_sessions",
			Help:      "Chat sessions currently held in memory",
		},
	)
)
