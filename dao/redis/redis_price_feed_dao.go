package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gf-server/db"
	"gf-server/models"
)

// LIVE_PRICE_KEY_FORMAT is used to cache live price entries per listing.
const LIVE_PRICE_KEY_FORMAT = "live_price_v1:%s"

// RedisPriceFeedDAO stores the live price feed, one key per listing id.
type RedisPriceFeedDAO struct {
	client db.RedisClient
}

// NewRedisPriceFeedDAO initializes a RedisPriceFeedDAO with the Redis client.
func NewRedisPriceFeedDAO(client db.RedisClient) *RedisPriceFeedDAO {
	return &RedisPriceFeedDAO{client: client}
}

// SetLiveFeedEntry caches the live price entry for a listing.
func (dao *RedisPriceFeedDAO) SetLiveFeedEntry(id string, entry models.LiveFeedEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal live price for %s: %w", id, err)
	}
	if err := dao.client.Set(fmt.Sprintf(LIVE_PRICE_KEY_FORMAT, id), string(data)); err != nil {
		return fmt.Errorf("failed to set live price in redis: %w", err)
	}
	return nil
}

// GetLiveFeedEntry returns the cached entry for id, or nil on a cache miss.
func (dao *RedisPriceFeedDAO) GetLiveFeedEntry(id string) (*models.LiveFeedEntry, error) {
	str, err := dao.client.Get(fmt.Sprintf(LIVE_PRICE_KEY_FORMAT, id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live price from redis: %w", err)
	}
	var entry models.LiveFeedEntry
	if err := json.Unmarshal([]byte(str), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal live price JSON: %w", err)
	}
	return &entry, nil
}

// GetLiveFeed assembles a feed for the given ids. Ids without an entry are absent.
func (dao *RedisPriceFeedDAO) GetLiveFeed(ids []string) (models.LiveFeed, error) {
	feed := make(models.LiveFeed, len(ids))
	for _, id := range ids {
		entry, err := dao.GetLiveFeedEntry(id)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			feed[id] = *entry
		}
	}
	return feed, nil
}

// ListLiveFeedIDs returns the ids of all listings with a live entry, sorted.
func (dao *RedisPriceFeedDAO) ListLiveFeedIDs() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(LIVE_PRICE_KEY_FORMAT, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list live price keys: %w", err)
	}
	prefix := fmt.Sprintf(LIVE_PRICE_KEY_FORMAT, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	sort.Strings(ids)
	return ids, nil
}
