package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostic_sessions_started_total",
			Help: "Total number of assessment sessions started",
		},
	)

	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostic_sessions_completed_total",
			Help: "Total number of sessions that reached full results",
		},
	)

	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostic_scoring_requests_total",
			Help: "Total number of scoring service calls by outcome",
		},
		[]string{"status"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "diagnostic_scoring_request_duration_seconds",
			Help: "Duration of scoring service calls in seconds",
		},
	)

	PagesRasterized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diagnostic_report_pages_rasterized_total",
			Help: "Total number of report pages rasterized",
		},
	)

	ReportRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "diagnostic_report_render_duration_seconds",
			Help: "Duration of full report generation in seconds",
		},
	)

	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnostic_delivery_attempts_total",
			Help: "Total number of report delivery attempts by provider and outcome",
		},
		[]string{"provider", "status"},
	)
)
