package gatekeeper

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStoreUnavailable wraps failures of the backing admission store.
var ErrStoreUnavailable = errors.New("admission store unavailable")

// AdmissionStore holds the per-IP sliding windows and the blocked set.
type AdmissionStore interface {
	// RecordHit drops timestamps older than window, then records now unless
	// limit hits are already in the window. count is the window size after the call.
	RecordHit(ctx context.Context, ip string, now time.Time, window time.Duration, limit int) (allowed bool, count int, err error)
	IsBlocked(ctx context.Context, ip string) (bool, error)
	Block(ctx context.Context, ip, reason string) error
	ResetBlocks(ctx context.Context) error
}

// MemoryStore is a process-local AdmissionStore.
type MemoryStore struct {
	hits    map[string][]time.Time // ip -> request timestamps
	blocked map[string]string      // ip -> reason
	mu      sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hits:    make(map[string][]time.Time),
		blocked: make(map[string]string),
	}
}

func (s *MemoryStore) RecordHit(_ context.Context, ip string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)
	filtered := make([]time.Time, 0, len(s.hits[ip])+1)
	for _, ts := range s.hits[ip] {
		if ts.After(cutoff) {
			filtered = append(filtered, ts)
		}
	}

	if len(filtered) >= limit {
		s.hits[ip] = filtered
		return false, len(filtered), nil
	}

	filtered = append(filtered, now)
	s.hits[ip] = filtered
	return true, len(filtered), nil
}

func (s *MemoryStore) IsBlocked(_ context.Context, ip string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blocked[ip]
	return ok, nil
}

func (s *MemoryStore) Block(_ context.Context, ip, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[ip] = reason
	return nil
}

func (s *MemoryStore) ResetBlocks(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = make(map[string]string)
	return nil
}
