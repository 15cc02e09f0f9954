package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barter_match_score",
			Help:    "Distribution of barter compatibility scores.",
			Buckets: []float64{20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	matchVerdictTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barter_match_verdict_total",
			Help: "Total barter match calculations by verdict.",
		},
		[]string{"verdict"},
	)
)
