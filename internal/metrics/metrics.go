package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream fetch metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govproxy_upstream_requests_total",
			Help: "Total number of upstream fetches by host and outcome",
		},
		[]string{"host", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "govproxy_upstream_request_duration_seconds",
			Help:    "Duration of upstream fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Aggregator metrics
	BootstrapRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govproxy_bootstrap_requests_total",
			Help: "Total number of dashboard bootstrap requests by outcome",
		},
		[]string{"outcome"},
	)

	// Relay metrics
	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govproxy_relay_requests_total",
			Help: "Total number of Gemini relay requests by outcome",
		},
		[]string{"outcome"},
	)

	RelayUpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "govproxy_relay_upstream_duration_seconds",
			Help:    "Duration of forwarded Gemini calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
