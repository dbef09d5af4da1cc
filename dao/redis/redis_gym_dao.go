package redis

import (
	"encoding/json"
	"fmt"

	"gf-server/db"
	"gf-server/models"
)

const GYMS_GEO_KEY_V1 = "gyms_geo_v1"
const GYMS_GEO_PLACE_MEMBER_FORMAT_V1 = "gyms_geo_place_v1:%s"

// RedisGymDAO keeps a geo index of listings seen from the places provider.
type RedisGymDAO struct {
	client db.RedisClient
}

// NewRedisGymDAO initializes a RedisGymDAO with the Redis client.
func NewRedisGymDAO(client db.RedisClient) *RedisGymDAO {
	return &RedisGymDAO{client: client}
}

// UpsertListing stores the listing as a geolocation with its JSON data.
// Listings without coordinates are skipped.
func (dao *RedisGymDAO) UpsertListing(l models.RawListing) error {
	lat, lng := l.Coordinates()
	if l.ID == "" || (lat == 0 && lng == 0) {
		return nil
	}
	ctx := dao.client.GetContext()
	key := fmt.Sprintf(GYMS_GEO_PLACE_MEMBER_FORMAT_V1, l.ID)
	if err := dao.client.AddLocationWithJSON(ctx, GYMS_GEO_KEY_V1, key, lat, lng, l); err != nil {
		return fmt.Errorf("[RedisGymDAO] failed to upsert %s: %w", l.ToString(), err)
	}
	return nil
}

// UpsertListings stores every listing, stopping at the first error.
func (dao *RedisGymDAO) UpsertListings(listings []models.RawListing) error {
	for _, l := range listings {
		if err := dao.UpsertListing(l); err != nil {
			return err
		}
	}
	return nil
}

// GetNearbyListings returns cached listings within radiusKm of the point, nearest first.
func (dao *RedisGymDAO) GetNearbyListings(lat, lng, radiusKm float64) ([]models.RawListing, error) {
	raw, err := dao.client.GetLocationsWithinRadius(GYMS_GEO_KEY_V1, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("[RedisGymDAO] failed to get listings: %w", err)
	}

	listings := make([]models.RawListing, len(raw))
	for i, s := range raw {
		if err := json.Unmarshal([]byte(s), &listings[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing JSON: %w", err)
		}
	}
	return listings, nil
}
