package gatekeeper

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gf-server/models"
)

// Outcome is the kind of decision a gatekeeper makes for a request.
type Outcome string

const (
	OutcomePass   Outcome = "pass"
	OutcomeReset  Outcome = "reset"
	OutcomeDecoy  Outcome = "decoy"
	OutcomeReject Outcome = "reject"
)

// Verdict is a terminal decision. Body is written as JSON with Status.
type Verdict struct {
	Outcome Outcome
	Status  int
	Reason  string
	Body    interface{}
}

// Request is the part of an inbound HTTP request the policies look at.
type Request struct {
	IP        string
	Loopback  bool
	UserAgent string
	Referer   string
	Token     string
	Query     url.Values
	Now       time.Time
}

// NewRequest extracts the admission inputs from r.
func NewRequest(r *http.Request, now time.Time) *Request {
	ip := ClientIP(r)
	return &Request{
		IP:        ip,
		Loopback:  IsLoopbackRequest(r),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
		Token:     r.Header.Get(TokenHeader),
		Query:     r.URL.Query(),
		Now:       now,
	}
}

// Policy is one admission step. A nil verdict lets the request continue to
// the next policy. An error means the policy could not decide; the request continues.
type Policy interface {
	Name() string
	Evaluate(ctx context.Context, req *Request) (*Verdict, error)
}

func reject(status int, reason, message string) *Verdict {
	return &Verdict{
		Outcome: OutcomeReject,
		Status:  status,
		Reason:  reason,
		Body:    models.ErrorResponse{Error: message},
	}
}

// DevResetPolicy clears the blocked set for loopback callers sending reset=true.
type DevResetPolicy struct {
	Store   AdmissionStore
	Enabled bool
}

func (p *DevResetPolicy) Name() string { return "dev_reset" }

func (p *DevResetPolicy) Evaluate(ctx context.Context, req *Request) (*Verdict, error) {
	if !p.Enabled || !req.Loopback || req.Query.Get("reset") != "true" {
		return nil, nil
	}
	if err := p.Store.ResetBlocks(ctx); err != nil {
		return nil, err
	}
	return &Verdict{
		Outcome: OutcomeReset,
		Status:  http.StatusOK,
		Reason:  ReasonReset,
		Body:    map[string]bool{"success": true},
	}, nil
}

// DecoyPolicy serves the decoy payload to blocked, non-loopback callers.
type DecoyPolicy struct {
	Store AdmissionStore
	Count int
}

func (p *DecoyPolicy) Name() string { return "decoy" }

func (p *DecoyPolicy) Evaluate(ctx context.Context, req *Request) (*Verdict, error) {
	if req.Loopback {
		return nil, nil
	}
	blocked, err := p.Store.IsBlocked(ctx, req.IP)
	if err != nil || !blocked {
		return nil, err
	}
	return &Verdict{
		Outcome: OutcomeDecoy,
		Status:  http.StatusOK,
		Reason:  ReasonBlocked,
		Body:    DecoyResponse(p.Count),
	}, nil
}

// RateLimitPolicy allows Limit requests per IP in a sliding Window.
type RateLimitPolicy struct {
	Store  AdmissionStore
	Limit  int
	Window time.Duration
}

func (p *RateLimitPolicy) Name() string { return "rate_limit" }

func (p *RateLimitPolicy) Evaluate(ctx context.Context, req *Request) (*Verdict, error) {
	allowed, _, err := p.Store.RecordHit(ctx, req.IP, req.Now, p.Window, p.Limit)
	if err != nil || allowed {
		return nil, err
	}
	return reject(http.StatusTooManyRequests, ReasonRateLimited, "Too many requests, please slow down"), nil
}

// BotPolicy rejects automation user agents, and requests without a referer
// when RequireReferer is set.
type BotPolicy struct {
	RequireReferer bool
}

func (p *BotPolicy) Name() string { return "bot" }

func (p *BotPolicy) Evaluate(_ context.Context, req *Request) (*Verdict, error) {
	if IsBotUserAgent(req.UserAgent) {
		return reject(http.StatusForbidden, ReasonBotAgent, "Forbidden"), nil
	}
	if p.RequireReferer && req.Referer == "" {
		return reject(http.StatusForbidden, ReasonNoReferer, "Forbidden"), nil
	}
	return nil, nil
}

// SecretPolicy requires a valid shared-secret token.
type SecretPolicy struct {
	Tokens *TokenService
}

func (p *SecretPolicy) Name() string { return "secret" }

func (p *SecretPolicy) Evaluate(_ context.Context, req *Request) (*Verdict, error) {
	if err := p.Tokens.Verify(req.Token); err != nil {
		return reject(http.StatusUnauthorized, ReasonBadToken, "Unauthorized"), nil
	}
	return nil, nil
}

// ParamsPolicy requires parseable lat and lng query parameters.
type ParamsPolicy struct{}

func (p *ParamsPolicy) Name() string { return "params" }

func (p *ParamsPolicy) Evaluate(_ context.Context, req *Request) (*Verdict, error) {
	if _, ok := ParseCoordinate(req.Query.Get("lat")); !ok {
		return reject(http.StatusBadRequest, ReasonBadParams, "lat and lng are required"), nil
	}
	if _, ok := ParseCoordinate(req.Query.Get("lng")); !ok {
		return reject(http.StatusBadRequest, ReasonBadParams, "lat and lng are required"), nil
	}
	return nil, nil
}

// ParseCoordinate parses a finite decimal degree value.
func ParseCoordinate(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
