package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"gf-server/api"
	"gf-server/models"
	wire "gf-server/models/places"
)

const (
	SearchNearbyEndpoint = "/places:searchNearby"
	SearchTextEndpoint   = "/places:searchText"

	// MaxNearbyRadiusMeters is the largest circle the provider accepts.
	MaxNearbyRadiusMeters = 50000.0
	maxResultCount        = 20

	apiKeyHeader    = "X-Goog-Api-Key"
	fieldMaskHeader = "X-Goog-FieldMask"
	fieldMask       = "places.id,places.displayName,places.formattedAddress,places.addressComponents," +
		"places.location,places.rating,places.userRatingCount,places.priceLevel,places.primaryType," +
		"places.types,places.photos,places.websiteUri,places.googleMapsUri"
)

var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// PlacesApiClient talks to the Google Places (New) API.
type PlacesApiClient struct {
	*api.HTTPClient
	apiKey  string
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// NewPlacesApiClient creates a client limited to rps outbound requests per second.
func NewPlacesApiClient(httpClient *api.HTTPClient, apiKey string, rps float64, logger *zerolog.Logger) *PlacesApiClient {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	l := logger.With().Str("component", "places_client").Logger()
	return &PlacesApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     &l,
	}
}

// Search runs a nearby or text search depending on the request query.
func (c *PlacesApiClient) Search(ctx context.Context, req SearchRequest) ([]models.RawListing, error) {
	if math.IsNaN(req.Lat) || math.IsNaN(req.Lng) {
		return nil, ErrMissingCoordinates
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("places rate limiter: %w", err)
	}

	mode := req.Mode()
	endpoint, body := c.buildRequest(req, mode)
	headers := map[string]string{
		apiKeyHeader:    c.apiKey,
		fieldMaskHeader: fieldMask,
	}

	start := time.Now()
	var resp wire.SearchResponse
	err := c.Request(ctx, "POST", endpoint, headers, body, &resp)
	UpstreamRequestDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err != nil {
		UpstreamErrorsTotal.WithLabelValues(mode).Inc()
		return nil, fmt.Errorf("places %s search failed: %w", mode, err)
	}

	found, ok := decodePlaces(resp.Places)
	if !ok {
		MalformedResponsesTotal.Inc()
		c.logger.Warn().Str("mode", mode).Msg("places payload is not an array, treating as no results")
	}

	listings := make([]models.RawListing, 0, len(found))
	for _, p := range found {
		listings = append(listings, ToRawListing(p))
	}
	c.logger.Debug().Str("mode", mode).Int("count", len(listings)).
		Float64("lat", req.Lat).Float64("lng", req.Lng).Msg("places search completed")
	return listings, nil
}

func (c *PlacesApiClient) buildRequest(req SearchRequest, mode string) (string, interface{}) {
	radius := req.RadiusMeters
	if radius <= 0 || radius > MaxNearbyRadiusMeters {
		radius = MaxNearbyRadiusMeters
	}
	circle := wire.Circle{
		Center: wire.Location{Latitude: req.Lat, Longitude: req.Lng},
		Radius: radius,
	}

	if mode == ModeText {
		return SearchTextEndpoint, wire.SearchTextRequest{
			TextQuery:    strings.TrimSpace(req.Query) + " gym",
			PageSize:     maxResultCount,
			LocationBias: wire.Area{Circle: circle},
			RegionCode:   "GB",
		}
	}
	return SearchNearbyEndpoint, wire.SearchNearbyRequest{
		IncludedTypes:       []string{"gym"},
		MaxResultCount:      maxResultCount,
		LocationRestriction: wire.Area{Circle: circle},
		RankPreference:      "DISTANCE",
	}
}

// decodePlaces returns the places array. ok is false when the payload was
// present but not a decodable array.
func decodePlaces(raw json.RawMessage) ([]wire.Place, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}
	if trimmed[0] != '[' {
		return nil, false
	}
	var out []wire.Place
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, false
	}
	return out, true
}

// ToRawListing converts a provider place to the pipeline's input record.
func ToRawListing(p wire.Place) models.RawListing {
	photos := make([]string, 0, len(p.Photos))
	for _, ph := range p.Photos {
		if ph.Name != "" {
			photos = append(photos, ph.Name)
		}
	}
	return models.RawListing{
		ID:               p.ID,
		Name:             p.DisplayName.Text,
		Address:          p.FormattedAddress,
		City:             cityOf(p.AddressComponents),
		Location:         &models.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude},
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingCount,
		PriceLevel:       priceLevels[p.PriceLevel],
		Type:             p.PrimaryType,
		Types:            p.Types,
		Photos:           photos,
		Website:          p.WebsiteURI,
		GoogleMapsURI:    p.GoogleMapsURI,
	}
}

func cityOf(components []wire.AddressComponent) string {
	var locality string
	for _, c := range components {
		for _, t := range c.Types {
			switch t {
			case "postal_town":
				return c.LongText
			case "locality":
				if locality == "" {
					locality = c.LongText
				}
			}
		}
	}
	return locality
}
