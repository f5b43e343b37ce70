// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_submissions_total",
			Help: "Total number of accepted study submissions",
		},
		[]string{"semester", "week"},
	)

	DuplicateSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "study_submissions_duplicate_total",
			Help: "Submissions rejected because the semester/week slot was taken",
		},
	)

	PointsAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_adjustments_total",
			Help: "Point ledger adjustments applied",
		},
		[]string{"direction"},
	)

	PointsCreditFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_credit_failures_total",
			Help: "Homework point credits that failed after the submission was stored",
		},
	)

	ResourcesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resources_published_total",
			Help: "Resources published by instructors",
		},
		[]string{"type"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
