package gatekeeper

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Admission defaults.
const (
	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 60 * time.Second
)

// Options configures the default policy chain.
type Options struct {
	Production        bool
	Secret            string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	TokenSkewMinutes  int
	DecoyCount        int
	Now               func() time.Time
}

// Gatekeeper runs admission policies in order; the first verdict wins.
type Gatekeeper struct {
	policies []Policy
	now      func() time.Time
	logger   *zerolog.Logger
}

// New builds a gatekeeper with the standard chain: dev reset, decoy, rate
// limit, bot heuristics, shared secret, required parameters.
func New(store AdmissionStore, opts Options, logger *zerolog.Logger) *Gatekeeper {
	if opts.RateLimitRequests <= 0 {
		opts.RateLimitRequests = DefaultRateLimitRequests
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = DefaultRateLimitWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	policies := []Policy{
		&DevResetPolicy{Store: store, Enabled: !opts.Production},
		&DecoyPolicy{Store: store, Count: opts.DecoyCount},
		&RateLimitPolicy{Store: store, Limit: opts.RateLimitRequests, Window: opts.RateLimitWindow},
		&BotPolicy{RequireReferer: opts.Production},
		&SecretPolicy{Tokens: NewTokenService(opts.Secret, opts.TokenSkewMinutes, opts.Now)},
		&ParamsPolicy{},
	}
	return NewWithPolicies(policies, opts.Now, logger)
}

// NewWithPolicies builds a gatekeeper running exactly the given policies.
func NewWithPolicies(policies []Policy, now func() time.Time, logger *zerolog.Logger) *Gatekeeper {
	if now == nil {
		now = time.Now
	}
	l := logger.With().Str("component", "gatekeeper").Logger()
	return &Gatekeeper{policies: policies, now: now, logger: &l}
}

// Admit evaluates r. It returns nil when the request may pass through.
func (g *Gatekeeper) Admit(ctx context.Context, r *http.Request) *Verdict {
	req := NewRequest(r, g.now())

	for _, p := range g.policies {
		verdict, err := p.Evaluate(ctx, req)
		if err != nil {
			StoreErrorsTotal.WithLabelValues(p.Name()).Inc()
			g.logger.Error().Err(err).Str("policy", p.Name()).Str("ip", req.IP).Msg("Admission policy failed, continuing")
			continue
		}
		if verdict == nil {
			continue
		}

		DecisionsTotal.WithLabelValues(string(verdict.Outcome), verdict.Reason).Inc()
		if verdict.Outcome == OutcomeReject {
			g.logger.Warn().Str("ip", req.IP).Str("reason", verdict.Reason).Str("user_agent", req.UserAgent).Msg("Request rejected")
		} else {
			g.logger.Info().Str("ip", req.IP).Str("outcome", string(verdict.Outcome)).Msg("Request short-circuited")
		}
		return verdict
	}

	DecisionsTotal.WithLabelValues(string(OutcomePass), ReasonOK).Inc()
	return nil
}

// Middleware writes terminal verdicts and forwards admitted requests to next.
func (g *Gatekeeper) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		verdict := g.Admit(r.Context(), r)
		if verdict == nil {
			next.ServeHTTP(w, r)
			return
		}
		writeVerdict(w, verdict)
	})
}

func writeVerdict(w http.ResponseWriter, v *Verdict) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(v.Status)
	_ = json.NewEncoder(w).Encode(v.Body)
}
