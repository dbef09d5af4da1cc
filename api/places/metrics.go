package places

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestDuration measures places API latency by search mode.
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "places_upstream_request_duration_seconds",
		Help:    "Duration of upstream places API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// UpstreamErrorsTotal counts failed upstream requests by search mode.
	UpstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_upstream_errors_total",
		Help: "Total number of failed upstream places API requests",
	}, []string{"mode"})

	// MalformedResponsesTotal counts payloads coerced to an empty result.
	MalformedResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "places_upstream_malformed_responses_total",
		Help: "Total number of upstream responses whose places field was not an array",
	})
)
