package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/gf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.AppEnv)
	assert.True(t, cfg.IsLocal())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, AdmissionStoreMemory, cfg.AdmissionStore)
	assert.Equal(t, 10*time.Second, cfg.PlacesTimeout)
	assert.Equal(t, 20, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.TokenSkewMinutes)
	assert.Equal(t, 10, cfg.DecoyCount)
	assert.Equal(t, 100000.0, cfg.DefaultRadiusMeters)
	assert.Equal(t, 100, cfg.ResultLimit)
	assert.Equal(t, filepath.Join("/srv/gf", "resources", "places_search_response.json"), cfg.PlacesFixturePath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ADMISSION_STORE", "redis")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("PLACES_FIXTURE_PATH", "/tmp/places.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, AdmissionStoreRedis, cfg.AdmissionStore)
	assert.Equal(t, 2*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "/tmp/places.json", cfg.PlacesFixturePath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"ADMISSION_STORE": "dynamo"}},
		{"redis store without address", map[string]string{"ADMISSION_STORE": "redis", "REDIS_ADDR": ""}},
		{"zero rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
		{"bad duration", map[string]string{"PLACES_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
