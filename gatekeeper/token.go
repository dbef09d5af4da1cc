package gatekeeper

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Token constants.
const (
	TokenHeader = "X-Gym-Token"

	// FallbackSecret is always accepted next to the configured secret.
	FallbackSecret = "gymfinder-web-v1"

	// BypassToken is accepted as-is without a timestamp. Known weak point:
	// anyone who reads the web bundle can skip the freshness check.
	BypassToken = "gymfinder-internal"

	DefaultTokenSkewMinutes = 5
)

// Token errors.
var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token outside accepted window")
)

// TokenService verifies `secret:unixMinutes` tokens, sent either base64 encoded or plain.
type TokenService struct {
	secrets []string
	skew    int64
	now     func() time.Time
}

// NewTokenService creates a token service accepting secret and FallbackSecret.
func NewTokenService(secret string, skewMinutes int, now func() time.Time) *TokenService {
	if skewMinutes <= 0 {
		skewMinutes = DefaultTokenSkewMinutes
	}
	if now == nil {
		now = time.Now
	}
	secrets := []string{FallbackSecret}
	if secret != "" && secret != FallbackSecret {
		secrets = []string{secret, FallbackSecret}
	}
	return &TokenService{secrets: secrets, skew: int64(skewMinutes), now: now}
}

// Verify returns nil when the token is the bypass literal or a fresh token for
// an accepted secret.
func (s *TokenService) Verify(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if token == BypassToken {
		return nil
	}

	err := ErrInvalidToken
	for _, candidate := range decodeCandidates(token) {
		secret, minutes, ok := splitToken(candidate)
		if !ok || !s.acceptedSecret(secret) {
			continue
		}
		if s.fresh(minutes) {
			return nil
		}
		err = ErrTokenExpired
	}
	return err
}

func (s *TokenService) acceptedSecret(secret string) bool {
	for _, accepted := range s.secrets {
		if subtle.ConstantTimeCompare([]byte(secret), []byte(accepted)) == 1 {
			return true
		}
	}
	return false
}

func (s *TokenService) fresh(minutes int64) bool {
	delta := s.now().Unix()/60 - minutes
	if delta < 0 {
		delta = -delta
	}
	return delta <= s.skew
}

// decodeCandidates returns the plain token followed by every base64 decoding that succeeds.
func decodeCandidates(token string) []string {
	candidates := []string{token}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(token); err == nil {
			candidates = append(candidates, string(data))
		}
	}
	return candidates
}

func splitToken(s string) (string, int64, bool) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return "", 0, false
	}
	minutes, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return s[:i], minutes, true
}
