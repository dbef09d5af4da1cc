package gatekeeper

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gf-server/db"
)

const HITS_KEY_FORMAT = "gatekeeper_hits_v1:%s"
const BLOCKED_SET_KEY = "gatekeeper_blocked_v1"

// RedisStore is an AdmissionStore shared by every instance pointing at the same redis.
// Windows are sorted sets scored by unix milliseconds.
type RedisStore struct {
	client db.RedisClient
}

// NewRedisStore initializes a RedisStore with the Redis client.
func NewRedisStore(client db.RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) RecordHit(ctx context.Context, ip string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	key := fmt.Sprintf(HITS_KEY_FORMAT, ip)
	cutoff := float64(now.Add(-window).UnixMilli())

	if err := s.client.ZRemRangeByScore(ctx, key, 0, cutoff); err != nil {
		return true, 0, fmt.Errorf("%w: trim window: %v", ErrStoreUnavailable, err)
	}
	count, err := s.client.ZCard(ctx, key)
	if err != nil {
		return true, 0, fmt.Errorf("%w: count window: %v", ErrStoreUnavailable, err)
	}
	if int(count) >= limit {
		return false, int(count), nil
	}

	if err := s.client.ZAdd(ctx, key, float64(now.UnixMilli()), uuid.NewString()); err != nil {
		return true, int(count), fmt.Errorf("%w: record hit: %v", ErrStoreUnavailable, err)
	}
	if err := s.client.Expire(ctx, key, window); err != nil {
		return true, int(count) + 1, fmt.Errorf("%w: expire window: %v", ErrStoreUnavailable, err)
	}
	return true, int(count) + 1, nil
}

func (s *RedisStore) IsBlocked(ctx context.Context, ip string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, BLOCKED_SET_KEY, ip)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ok, nil
}

// Block adds ip to the blocked set. The reason is only logged by callers.
func (s *RedisStore) Block(ctx context.Context, ip, _ string) error {
	if err := s.client.SAdd(ctx, BLOCKED_SET_KEY, ip); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) ResetBlocks(_ context.Context) error {
	if err := s.client.Del(BLOCKED_SET_KEY); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
