package di

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"gf-server/api"
	"gf-server/api/places"
	"gf-server/config"
	"gf-server/dao/redis"
	"gf-server/db"
	"gf-server/gatekeeper"
	"gf-server/honeypot"
	"gf-server/search"
	"gf-server/server"
	"gf-server/server/handlers"
	services "gf-server/service"
	"gf-server/util"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient         db.RedisClient
	AdmissionStore      gatekeeper.AdmissionStore
	PlacesAPI           places.PlacesAPI
	RedisGymDao         *redis.RedisGymDAO
	RedisPriceFeedDao   *redis.RedisPriceFeedDAO
	Rules               *search.Rules
	GymSearchService    *services.GymSearchService
	PriceService        *services.PriceService
	Gatekeeper          *gatekeeper.Gatekeeper
	HoneypotSensor      *honeypot.Sensor
	GymHandler          *handlers.GymHandler
	PriceHandler        *handlers.PriceHandler
	PlotHandler         *handlers.PlotHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	GymFinderHttpServer *server.GymFinderHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config, logger *zerolog.Logger) (*Container, error) {
	logger.Info().Str("env", cfg.AppEnv).Msg("Initializing container")

	rules, err := loadRules(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	var store gatekeeper.AdmissionStore
	if cfg.AdmissionStore == config.AdmissionStoreRedis {
		store = gatekeeper.NewRedisStore(redisClient)
	} else {
		store = gatekeeper.NewMemoryStore()
	}
	logger.Info().Str("admission_store", cfg.AdmissionStore).Msg("Admission store ready")

	var placesApi places.PlacesAPI
	if cfg.PlacesAPIKey == "" {
		logger.Info().Str("fixture", cfg.PlacesFixturePath).Msg("Using mock places api")
		placesApi = places.NewPlacesApiClientMock(cfg.PlacesFixturePath)
	} else {
		logger.Info().Str("endpoint", cfg.PlacesEndpoint).Msg("Using google places api")
		httpClient := api.NewHTTPClient(cfg.PlacesEndpoint, cfg.PlacesTimeout)
		placesApi = places.NewPlacesApiClient(httpClient, cfg.PlacesAPIKey, cfg.PlacesRPS, logger)
	}

	gymDao := redis.NewRedisGymDAO(redisClient)
	priceDao := redis.NewRedisPriceFeedDAO(redisClient)
	if err := seedLiveFeed(cfg.LiveFeedSeedPath, priceDao, logger); err != nil {
		return nil, err
	}

	gymSearchService := services.NewGymSearchService(
		placesApi,
		gymDao,
		priceDao,
		search.NewPipeline(rules, cfg.ResultLimit),
		gatekeeper.NewUpstreamFilter(rules.UpstreamFilter),
		cfg.DefaultRadiusMeters,
		logger)
	priceService := services.NewPriceService(priceDao)

	gk := gatekeeper.New(store, gatekeeper.Options{
		Production:        cfg.IsProduction(),
		Secret:            cfg.GatekeeperSecret,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		TokenSkewMinutes:  cfg.TokenSkewMinutes,
		DecoyCount:        cfg.DecoyCount,
	}, logger)

	sensor, err := honeypot.NewSensor(store, cfg.DecoyCount, logger)
	if err != nil {
		return nil, err
	}

	gymHandler := handlers.NewGymHandler(gymSearchService, logger)
	priceHandler := handlers.NewPriceHandler(priceService, logger)
	plotHandler := handlers.NewPlotHandler(gymSearchService, logger)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(
		gymHandler,
		priceHandler,
		sensor,
		plotHandler,
		gk.Middleware,
		!cfg.IsProduction(),
		muxRouter)

	httpServer := server.NewGymFinderHttpServer(router, muxRouter, cfg.HTTPPort, logger)

	return &Container{
		RedisClient:         redisClient,
		AdmissionStore:      store,
		PlacesAPI:           placesApi,
		RedisGymDao:         gymDao,
		RedisPriceFeedDao:   priceDao,
		Rules:               rules,
		GymSearchService:    gymSearchService,
		PriceService:        priceService,
		Gatekeeper:          gk,
		HoneypotSensor:      sensor,
		GymHandler:          gymHandler,
		PriceHandler:        priceHandler,
		PlotHandler:         plotHandler,
		MuxRouter:           muxRouter,
		Router:              router,
		GymFinderHttpServer: httpServer,
	}, nil
}

func seedLiveFeed(path string, priceDao *redis.RedisPriceFeedDAO, logger *zerolog.Logger) error {
	if path == "" {
		return nil
	}
	feed, err := util.ReadLiveFeedFromJSON(path)
	if err != nil {
		return fmt.Errorf("loading live feed seed: %w", err)
	}
	for id, entry := range feed {
		if err := priceDao.SetLiveFeedEntry(id, entry); err != nil {
			return fmt.Errorf("seeding live feed entry %s: %w", id, err)
		}
	}
	logger.Info().Int("entries", len(feed)).Str("path", path).Msg("Seeded live price feed")
	return nil
}

func loadRules(cfg *config.Config) (*search.Rules, error) {
	if cfg.ListingRulesPath == "" {
		return search.DefaultRules()
	}
	rules, err := search.LoadRules(cfg.ListingRulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading listing rules: %w", err)
	}
	return rules, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger) (db.RedisClient, error) {
	ctx := context.Background()
	if cfg.RedisAddr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, using in-memory redis")
		return db.NewMockRedisClient(ctx), nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	redisClient := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return redisClient, nil
}
