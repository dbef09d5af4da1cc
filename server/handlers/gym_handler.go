package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"gf-server/gatekeeper"
	"gf-server/models"
	"gf-server/search"
	services "gf-server/service"
)

const (
	LAT_QUERY_ARG          = "lat"
	LNG_QUERY_ARG          = "lng"
	RADIUS_QUERY_ARG       = "radius"
	QUERY_QUERY_ARG        = "query"
	FILTER_QUERY_ARG       = "filter"
	TYPE_QUERY_ARG         = "type"
	MAX_DISTANCE_QUERY_ARG = "max_distance"
	PRICE_LEVEL_QUERY_ARG  = "price_level"
	MIN_RATING_QUERY_ARG   = "min_rating"
	SORT_QUERY_ARG         = "sort"
)

type GymHandler struct {
	gymService *services.GymSearchService
	logger     *zerolog.Logger
}

func NewGymHandler(gymService *services.GymSearchService, logger *zerolog.Logger) *GymHandler {
	l := logger.With().Str("component", "gym_handler").Logger()
	return &GymHandler{gymService: gymService, logger: &l}
}

// SearchGyms handles GET /v1/gyms/search
func (h *GymHandler) SearchGyms(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchArgs(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid search arguments", err.Error(), h.logger)
		return
	}

	gyms, err := h.gymService.Search(r.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrUpstreamFailed) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, models.FailedSearchResponse{
			Error:   services.ErrUpstreamFailed.Error(),
			Details: err.Error(),
			Results: []models.DisplayGym{},
		}, h.logger)
		return
	}

	if gyms == nil {
		gyms = []models.DisplayGym{}
	}
	writeJSON(w, http.StatusOK, models.SearchResponse{Results: gyms}, h.logger)
}

// Ping handles GET /ping
func (h *GymHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"}, h.logger)
}

func parseSearchArgs(vals url.Values) (services.SearchParams, error) {
	var p services.SearchParams
	var ok bool

	if p.Lat, ok = gatekeeper.ParseCoordinate(vals.Get(LAT_QUERY_ARG)); !ok {
		return p, errors.New("invalid argument " + LAT_QUERY_ARG)
	}
	if p.Lng, ok = gatekeeper.ParseCoordinate(vals.Get(LNG_QUERY_ARG)); !ok {
		return p, errors.New("invalid argument " + LNG_QUERY_ARG)
	}

	var err error
	if p.RadiusMeters, err = optionalFloat(vals, RADIUS_QUERY_ARG); err != nil {
		return p, err
	}
	p.Query = strings.TrimSpace(vals.Get(QUERY_QUERY_ARG))

	p.Refine = search.RefineOptions{
		Query:      vals.Get(FILTER_QUERY_ARG),
		Type:       vals.Get(TYPE_QUERY_ARG),
		PriceLevel: vals.Get(PRICE_LEVEL_QUERY_ARG),
		Sort:       search.ParseSortKey(vals.Get(SORT_QUERY_ARG)),
	}
	if p.Refine.MaxDistance, err = optionalFloat(vals, MAX_DISTANCE_QUERY_ARG); err != nil {
		return p, err
	}
	if p.Refine.MinRating, err = optionalFloat(vals, MIN_RATING_QUERY_ARG); err != nil {
		return p, err
	}
	return p, nil
}

// optionalFloat returns 0 for a missing argument and an error for a malformed or negative one.
func optionalFloat(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("invalid argument " + name)
	}
	return f, nil
}
