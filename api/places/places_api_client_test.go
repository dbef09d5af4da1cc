package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/api"
)

const placesPayload = `{
  "places": [
    {
      "id": "abc",
      "displayName": {"text": "PureGym London Holborn", "languageCode": "en"},
      "formattedAddress": "1 High Holborn, London WC1V 6AA, UK",
      "addressComponents": [
        {"longText": "Camden", "shortText": "Camden", "types": ["locality"]},
        {"longText": "London", "shortText": "London", "types": ["postal_town"]}
      ],
      "location": {"latitude": 51.517, "longitude": -0.12},
      "rating": 4.4,
      "userRatingCount": 812,
      "priceLevel": "PRICE_LEVEL_INEXPENSIVE",
      "primaryType": "gym",
      "types": ["gym", "point_of_interest"],
      "photos": [{"name": "places/abc/photos/1", "widthPx": 800, "heightPx": 600}],
      "websiteUri": "https://www.puregym.com"
    }
  ]
}`

type capturedRequest struct {
	path   string
	apiKey string
	mask   string
	body   map[string]interface{}
}

func newPlacesServer(t *testing.T, payload string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("X-Goog-Api-Key")
		captured.mask = r.Header.Get("X-Goog-FieldMask")
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *PlacesApiClient {
	logger := zerolog.Nop()
	return NewPlacesApiClient(api.NewHTTPClient(baseURL, time.Second), "test-key", 0, &logger)
}

func TestPlacesApiClient_SearchNearby(t *testing.T) {
	var captured capturedRequest
	srv := newPlacesServer(t, placesPayload, &captured)

	listings, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{
		Lat: 51.5074, Lng: -0.1278, RadiusMeters: 100000, Query: "gym",
	})
	require.NoError(t, err)

	assert.Equal(t, SearchNearbyEndpoint, captured.path)
	assert.Equal(t, "test-key", captured.apiKey)
	assert.Contains(t, captured.mask, "places.displayName")
	assert.Equal(t, []interface{}{"gym"}, captured.body["includedTypes"])
	circle := captured.body["locationRestriction"].(map[string]interface{})["circle"].(map[string]interface{})
	assert.Equal(t, MaxNearbyRadiusMeters, circle["radius"])

	require.Len(t, listings, 1)
	l := listings[0]
	assert.Equal(t, "abc", l.ID)
	assert.Equal(t, "PureGym London Holborn", l.Name)
	assert.Equal(t, "London", l.City)
	assert.Equal(t, 1, l.PriceLevel)
	assert.Equal(t, "gym", l.Type)
	assert.Equal(t, 812, l.UserRatingsTotal)
	assert.Equal(t, []string{"places/abc/photos/1"}, l.Photos)
	lat, lng := l.Coordinates()
	assert.Equal(t, 51.517, lat)
	assert.Equal(t, -0.12, lng)
}

func TestPlacesApiClient_SearchText(t *testing.T) {
	var captured capturedRequest
	srv := newPlacesServer(t, placesPayload, &captured)

	_, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{
		Lat: 51.5074, Lng: -0.1278, RadiusMeters: 2000, Query: " holborn ",
	})
	require.NoError(t, err)

	assert.Equal(t, SearchTextEndpoint, captured.path)
	assert.Equal(t, "holborn gym", captured.body["textQuery"])
	assert.Equal(t, "GB", captured.body["regionCode"])
	circle := captured.body["locationBias"].(map[string]interface{})["circle"].(map[string]interface{})
	assert.Equal(t, 2000.0, circle["radius"])
}

func TestPlacesApiClient_MalformedPlacesIsEmpty(t *testing.T) {
	for _, payload := range []string{`{"places": {"oops": true}}`, `{"places": "nope"}`, `{}`, `{"places": null}`} {
		t.Run(payload, func(t *testing.T) {
			var captured capturedRequest
			srv := newPlacesServer(t, payload, &captured)

			listings, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{Lat: 51.5, Lng: -0.12})
			require.NoError(t, err)
			assert.Empty(t, listings)
		})
	}
}

func TestPlacesApiClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), SearchRequest{Lat: 51.5, Lng: -0.12})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnexpectedStatus)
}

func TestSearchRequest_Mode(t *testing.T) {
	assert.Equal(t, ModeNearby, SearchRequest{}.Mode())
	assert.Equal(t, ModeNearby, SearchRequest{Query: " GYM "}.Mode())
	assert.Equal(t, ModeText, SearchRequest{Query: "puregym"}.Mode())
}

func TestPlacesApiClientMock_Search(t *testing.T) {
	mock := NewPlacesApiClientMock(filepath.Join("..", "..", "resources", "places_search_response.json"))

	listings, err := mock.Search(context.Background(), SearchRequest{Lat: 51.5, Lng: -0.12})
	require.NoError(t, err)
	assert.NotEmpty(t, listings)

	_, err = NewPlacesApiClientMock("does-not-exist.json").Search(context.Background(), SearchRequest{})
	assert.Error(t, err)
}

func TestPlacesApiClientMock_SearchWireFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(path, []byte(placesPayload), 0o600))

	listings, err := NewPlacesApiClientMock(path).Search(context.Background(), SearchRequest{})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "abc", listings[0].ID)
	assert.Equal(t, "London", listings[0].City)
	assert.Equal(t, 1, listings[0].PriceLevel)
}
