package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barter_notifier_dispatch_total",
			Help: "Total dispatched events by event kind and outcome.",
		},
		[]string{"event", "outcome"},
	)
	pushTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barter_notifier_push_tokens_total",
			Help: "Device tokens reported by the push transport, by delivery result.",
		},
		[]string{"result"},
	)
	lookupFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barter_notifier_lookup_failures_total",
			Help: "Failed collaborator lookups by lookup kind.",
		},
		[]string{"lookup"},
	)
	gatewaySendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barter_push_gateway_send_total",
			Help: "Total push gateway request attempts by status.",
		},
		[]string{"status"},
	)
	gatewaySendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barter_push_gateway_send_duration_seconds",
			Help:    "Duration of push gateway HTTP requests.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
)
