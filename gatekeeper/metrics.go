package gatekeeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	ReasonOK          = "ok"
	ReasonReset       = "reset"
	ReasonBlocked     = "blocked"
	ReasonRateLimited = "rate_limited"
	ReasonBotAgent    = "bot_user_agent"
	ReasonNoReferer   = "missing_referer"
	ReasonBadToken    = "invalid_token"
	ReasonBadParams   = "invalid_params"
)

var (
	// DecisionsTotal counts admission decisions by outcome and reason.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatekeeper_decisions_total",
		Help: "Total number of gatekeeper admission decisions",
	}, []string{"outcome", "reason"})

	// StoreErrorsTotal counts admission store failures. The request is admitted when they happen.
	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatekeeper_store_errors_total",
		Help: "Total number of admission store errors",
	}, []string{"operation"})

	// UpstreamFilteredTotal counts upstream places dropped by the category filter.
	UpstreamFilteredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatekeeper_upstream_filtered_total",
		Help: "Total number of upstream places dropped by the category filter",
	}, []string{"reason"})
)
