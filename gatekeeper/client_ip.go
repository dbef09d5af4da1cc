package gatekeeper

import (
	"net"
	"net/http"
	"strings"
)

// PeerIP returns the host part of RemoteAddr, the directly connected peer.
func PeerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientIP returns the caller address. Forwarding headers (first
// X-Forwarded-For hop, then X-Real-IP) are honoured only when the peer is a
// trusted proxy; otherwise the peer address is the caller.
func ClientIP(r *http.Request) string {
	peer := PeerIP(r)
	if !IsTrustedProxy(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if first := strings.TrimSpace(parts[0]); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

// IsTrustedProxy reports whether ip may set forwarding headers: loopback or a
// private (RFC 1918 / RFC 4193) address.
func IsTrustedProxy(ip string) bool {
	if IsLoopback(ip) {
		return true
	}
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsPrivate()
}

// IsLoopback reports whether ip is localhost, 127.0.0.0/8 or ::1.
func IsLoopback(ip string) bool {
	if strings.EqualFold(ip, "localhost") {
		return true
	}
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}

// IsLoopbackRequest reports whether r comes from this machine: the peer is
// loopback and no forwarding header names another caller.
func IsLoopbackRequest(r *http.Request) bool {
	return IsLoopback(PeerIP(r)) && IsLoopback(ClientIP(r))
}
