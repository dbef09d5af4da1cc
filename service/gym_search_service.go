package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"gf-server/api/places"
	"gf-server/dao/redis"
	"gf-server/gatekeeper"
	"gf-server/models"
	"gf-server/search"
)

// DEFAULT_RADIUS_METERS is used when a search does not name a radius.
const DEFAULT_RADIUS_METERS = 100000.0

// ErrUpstreamFailed is returned when the places provider call fails.
var ErrUpstreamFailed = errors.New("failed to load gyms, try again")

// SearchParams is one inbound gym search.
type SearchParams struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	Query        string
	Refine       search.RefineOptions
}

// GymSearchService fetches listings from the places provider and ranks them.
type GymSearchService struct {
	placesApi     places.PlacesAPI
	gymDao        *redis.RedisGymDAO
	priceDao      *redis.RedisPriceFeedDAO
	pipeline      *search.Pipeline
	upstream      *gatekeeper.UpstreamFilter
	defaultRadius float64
	logger        *zerolog.Logger
}

// NewGymSearchService constructs a new GymSearchService.
func NewGymSearchService(
	placesApi places.PlacesAPI,
	gymDao *redis.RedisGymDAO,
	priceDao *redis.RedisPriceFeedDAO,
	pipeline *search.Pipeline,
	upstream *gatekeeper.UpstreamFilter,
	defaultRadius float64,
	logger *zerolog.Logger) *GymSearchService {

	if defaultRadius <= 0 {
		defaultRadius = DEFAULT_RADIUS_METERS
	}
	l := logger.With().Str("component", "gym_search_service").Logger()
	return &GymSearchService{
		placesApi:     placesApi,
		gymDao:        gymDao,
		priceDao:      priceDao,
		pipeline:      pipeline,
		upstream:      upstream,
		defaultRadius: defaultRadius,
		logger:        &l,
	}
}

// Search runs upstream fetch, category filter, live price lookup, ranking and
// the refine pass. Cache and feed failures only degrade the result.
func (s *GymSearchService) Search(ctx context.Context, p SearchParams) ([]models.DisplayGym, error) {
	req := places.SearchRequest{Lat: p.Lat, Lng: p.Lng, RadiusMeters: p.RadiusMeters, Query: p.Query}
	if req.RadiusMeters <= 0 {
		req.RadiusMeters = s.defaultRadius
	}

	listings, err := s.placesApi.Search(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Float64("lat", p.Lat).Float64("lng", p.Lng).Msg("Upstream places search failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	listings = s.upstream.Filter(listings)

	if err := s.gymDao.UpsertListings(listings); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache listings")
	}

	feed, err := s.priceDao.GetLiveFeed(listingIDs(listings))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Live price feed unavailable, using fallbacks")
		feed = nil
	}

	// The default query only selects nearby mode; it is not a name filter.
	textQuery := ""
	if req.Mode() == places.ModeText {
		textQuery = p.Query
	}

	origin := models.LatLng{Lat: p.Lat, Lng: p.Lng}
	ranked, stats := s.pipeline.RankWithStats(listings, origin, textQuery, feed)
	refined := search.Refine(ranked, p.Refine)
	observeStats(stats, len(refined))

	s.logger.Debug().
		Int("input", stats.Input).
		Int("ranked", stats.Output).
		Int("refined", len(refined)).
		Str("mode", req.Mode()).
		Msg("Gym search completed")
	return refined, nil
}

// CachedNearby ranks listings already in the geo cache without calling upstream.
func (s *GymSearchService) CachedNearby(lat, lng, radiusKm float64) ([]models.DisplayGym, error) {
	listings, err := s.gymDao.GetNearbyListings(lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	feed, err := s.priceDao.GetLiveFeed(listingIDs(listings))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Live price feed unavailable, using fallbacks")
		feed = nil
	}
	return s.pipeline.Rank(listings, models.LatLng{Lat: lat, Lng: lng}, "", feed), nil
}

func listingIDs(listings []models.RawListing) []string {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if l.ID != "" {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
