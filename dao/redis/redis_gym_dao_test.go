package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/db"
	"gf-server/models"
)

func TestRedisGymDAO_UpsertListing_Success(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGymDAO(mockClient)

	listing := models.RawListing{ID: "gym123", Name: "PureGym Holborn", Lat: 51.5174, Lng: -0.1200}
	require.NoError(t, dao.UpsertListing(listing))

	storedValue, err := mockClient.Get("gyms_geo_place_v1:gym123")
	require.NoError(t, err)

	var stored models.RawListing
	require.NoError(t, json.Unmarshal([]byte(storedValue), &stored))
	assert.Equal(t, "PureGym Holborn", stored.Name)
}

func TestRedisGymDAO_UpsertListing_SkipsMissingCoordinates(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGymDAO(mockClient)

	require.NoError(t, dao.UpsertListing(models.RawListing{ID: "nowhere", Name: "Ghost Gym"}))

	_, err := mockClient.Get("gyms_geo_place_v1:nowhere")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestRedisGymDAO_GetNearbyListings_Success(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGymDAO(mockClient)

	require.NoError(t, dao.UpsertListings([]models.RawListing{
		{ID: "far", Name: "Manchester Gym", Lat: 53.4808, Lng: -2.2426},
		{ID: "near", Name: "Soho Gym", Location: &models.LatLng{Lat: 51.5136, Lng: -0.1365}},
		{ID: "nearer", Name: "Holborn Gym", Lat: 51.5174, Lng: -0.1200},
	}))

	listings, err := dao.GetNearbyListings(51.5174, -0.1200, 10)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "nearer", listings[0].ID)
	assert.Equal(t, "near", listings[1].ID)
}
