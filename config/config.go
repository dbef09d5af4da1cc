package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Deployment environments.
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Admission store backends.
const (
	AdmissionStoreMemory = "memory"
	AdmissionStoreRedis  = "redis"
)

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const PLACES_SEARCH_RESPONSE_RESOURCE = "places_search_response.json"

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Empty RedisAddr runs against the in-memory mock client.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AdmissionStore string `env:"ADMISSION_STORE" envDefault:"memory"`

	// Empty PlacesAPIKey serves listings from PlacesFixturePath.
	PlacesAPIKey      string        `env:"PLACES_API_KEY"`
	PlacesEndpoint    string        `env:"PLACES_ENDPOINT" envDefault:"https://places.googleapis.com/v1"`
	PlacesTimeout     time.Duration `env:"PLACES_TIMEOUT" envDefault:"10s"`
	PlacesRPS         float64       `env:"PLACES_RPS" envDefault:"5"`
	PlacesFixturePath string        `env:"PLACES_FIXTURE_PATH"`

	GatekeeperSecret  string        `env:"GATEKEEPER_SECRET"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"20"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	TokenSkewMinutes  int           `env:"TOKEN_SKEW_MINUTES" envDefault:"5"`
	DecoyCount        int           `env:"DECOY_COUNT" envDefault:"10"`

	// Optional JSON live price feed loaded into the price DAO at startup.
	LiveFeedSeedPath string `env:"LIVE_FEED_SEED_PATH"`

	ListingRulesPath    string  `env:"LISTING_RULES_PATH"`
	DefaultRadiusMeters float64 `env:"DEFAULT_RADIUS_METERS" envDefault:"100000"`
	ResultLimit         int     `env:"RESULT_LIMIT" envDefault:"100"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env file is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.PlacesFixturePath == "" {
		cfg.PlacesFixturePath = GetResourcePath(PLACES_SEARCH_RESPONSE_RESOURCE)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AdmissionStore {
	case AdmissionStoreMemory, AdmissionStoreRedis:
	default:
		return fmt.Errorf("unknown ADMISSION_STORE %q", c.AdmissionStore)
	}
	if c.AdmissionStore == AdmissionStoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("ADMISSION_STORE=redis requires REDIS_ADDR")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d per %s", c.RateLimitRequests, c.RateLimitWindow)
	}
	return nil
}

// IsProduction reports whether production-only checks apply.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, EnvProduction) || strings.EqualFold(c.AppEnv, "prod")
}

func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.AppEnv, EnvLocal)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
