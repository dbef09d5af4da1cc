package di

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/api/places"
	"gf-server/config"
	"gf-server/db"
	"gf-server/gatekeeper"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:              config.EnvLocal,
		HTTPPort:            0,
		AdmissionStore:      config.AdmissionStoreMemory,
		PlacesFixturePath:   filepath.Join("..", "resources", "places_search_response.json"),
		RateLimitRequests:   20,
		RateLimitWindow:     gatekeeper.DefaultRateLimitWindow,
		TokenSkewMinutes:    5,
		DecoyCount:          10,
		DefaultRadiusMeters: 100000,
		ResultLimit:         100,
	}
}

func TestNewContainer_LocalDefaults(t *testing.T) {
	logger := zerolog.Nop()
	c, err := NewContainer(testConfig(), &logger)
	require.NoError(t, err)

	assert.IsType(t, &db.MockRedisClient{}, c.RedisClient)
	assert.IsType(t, &gatekeeper.MemoryStore{}, c.AdmissionStore)
	assert.IsType(t, &places.PlacesApiClientMock{}, c.PlacesAPI)

	c.Router.RegisterRoutes()
	rec := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/gyms/plot?lat=51.5&lng=-0.12", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewContainer_SearchThroughGatekeeper(t *testing.T) {
	logger := zerolog.Nop()
	c, err := NewContainer(testConfig(), &logger)
	require.NoError(t, err)
	c.Router.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/v1/gyms/search?lat=51.5074&lng=-0.1278", nil)
	req.RemoteAddr = "203.0.113.10:5000"
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0")
	req.Header.Set(gatekeeper.TokenHeader, gatekeeper.BypassToken)
	rec := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results"`)

	req = httptest.NewRequest(http.MethodGet, "/v1/gyms/search?lat=51.5074&lng=-0.1278", nil)
	req.RemoteAddr = "203.0.113.11:5000"
	req.Header.Set("User-Agent", "curl/8.0")
	rec = httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNewContainer_ProductionHidesDebugRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.AppEnv = config.EnvProduction
	logger := zerolog.Nop()
	c, err := NewContainer(cfg, &logger)
	require.NoError(t, err)
	c.Router.RegisterRoutes()

	rec := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/gyms/plot?lat=51.5&lng=-0.12", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewContainer_SeedsLiveFeed(t *testing.T) {
	cfg := testConfig()
	cfg.LiveFeedSeedPath = filepath.Join("..", "resources", "live_feed_seed.json")
	logger := zerolog.Nop()
	c, err := NewContainer(cfg, &logger)
	require.NoError(t, err)

	entry, err := c.RedisPriceFeedDao.GetLiveFeedEntry("ChIJpg-oxford-street")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Len(t, entry.Prices, 2)
	assert.Equal(t, 10.0, entry.JoiningFees)

	cfg.LiveFeedSeedPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewContainer(cfg, &logger)
	assert.Error(t, err)
}

func TestNewContainer_BadRulesPath(t *testing.T) {
	cfg := testConfig()
	cfg.ListingRulesPath = filepath.Join(t.TempDir(), "missing.yaml")
	logger := zerolog.Nop()

	_, err := NewContainer(cfg, &logger)
	assert.Error(t, err)
}
