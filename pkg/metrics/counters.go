package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	PointsVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smuverify_points_verified_total",
		Help: "Verified calibration points by test and verdict.",
	}, []string{"test", "verdict"})

	BusFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smuverify_bus_faults_total",
		Help: "Bus level failures by instrument.",
	}, []string{"instrument"})

	SamplesTaken = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smuverify_samples_taken_total",
		Help: "Raw readings taken by instrument.",
	}, []string{"instrument"})

	OperatorPrompts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smuverify_operator_prompts_total",
		Help: "Times the run blocked waiting for the operator.",
	})

	TestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smuverify_test_duration_seconds",
		Help:    "Wall time of a single verification procedure.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"test"})
)
