package handlers

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog"

	"gf-server/models"
	services "gf-server/service"
	"gf-server/util"
)

const (
	RADIUS_KM_QUERY_ARG = "radius_km"

	defaultPlotRadiusKm = 10.0
)

// PlotHandler renders the cached gyms around a point. Debug only.
type PlotHandler struct {
	gymService *services.GymSearchService
	logger     *zerolog.Logger
}

func NewPlotHandler(gymService *services.GymSearchService, logger *zerolog.Logger) *PlotHandler {
	l := logger.With().Str("component", "plot_handler").Logger()
	return &PlotHandler{gymService: gymService, logger: &l}
}

// PlotGyms handles GET /debug/gyms/plot
func (h *PlotHandler) PlotGyms(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	params, err := parseSearchArgs(vals)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plot arguments", err.Error(), h.logger)
		return
	}
	radiusKm, err := optionalFloat(vals, RADIUS_KM_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plot arguments", err.Error(), h.logger)
		return
	}
	if radiusKm == 0 {
		radiusKm = defaultPlotRadiusKm
	}

	gyms, err := h.gymService.CachedNearby(params.Lat, params.Lng, radiusKm)
	if err != nil {
		h.logger.Error().Err(err).Msg("Error loading cached gyms")
		writeError(w, http.StatusInternalServerError, "Internal server error", "", h.logger)
		return
	}

	var buf bytes.Buffer
	if err := util.PlotGyms(&buf, models.LatLng{Lat: params.Lat, Lng: params.Lng}, gyms); err != nil {
		h.logger.Error().Err(err).Msg("Error rendering plot")
		writeError(w, http.StatusInternalServerError, "Internal server error", "", h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
