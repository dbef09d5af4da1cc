package honeypot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Violation reasons. Anything else reported by a client is counted as ReasonOther.
const (
	ReasonClick    = "click"
	ReasonHover    = "hover"
	ReasonFocus    = "focus"
	ReasonLinkTrap = "link_trap"
	ReasonOther    = "other"
)

var (
	// ViolationsTotal counts honeypot triggers by reason.
	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_violations_total",
		Help: "Total number of honeypot violations",
	}, []string{"reason"})
)

func normalizeReason(reason string) string {
	switch reason {
	case ReasonClick, ReasonHover, ReasonFocus, ReasonLinkTrap:
		return reason
	default:
		return ReasonOther
	}
}
