package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"gf-server/models"
	services "gf-server/service"
)

const (
	GYM_ID_PATH_VAR = "id"

	maxPriceBodyBytes = 16 << 10
)

type PriceHandler struct {
	priceService *services.PriceService
	logger       *zerolog.Logger
}

func NewPriceHandler(priceService *services.PriceService, logger *zerolog.Logger) *PriceHandler {
	l := logger.With().Str("component", "price_handler").Logger()
	return &PriceHandler{priceService: priceService, logger: &l}
}

// SubmitPrices handles POST /v1/gyms/{id}/prices
func (h *PriceHandler) SubmitPrices(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[GYM_ID_PATH_VAR]

	var sub services.PriceSubmission
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPriceBodyBytes)).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price submission", err.Error(), h.logger)
		return
	}

	entry, err := h.priceService.SubmitPrices(id, sub)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrice) {
			writeError(w, http.StatusBadRequest, "Invalid price submission", err.Error(), h.logger)
			return
		}
		h.logger.Error().Err(err).Str("gym_id", id).Msg("Failed to store prices")
		writeError(w, http.StatusInternalServerError, "Internal server error", "", h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, entry, h.logger)
}

// GetPrices handles GET /v1/gyms/{id}/prices
func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[GYM_ID_PATH_VAR]

	entry, err := h.priceService.GetPrices(id)
	if err != nil {
		if errors.Is(err, services.ErrPriceNotFound) {
			writeError(w, http.StatusNotFound, "No live prices for gym", id, h.logger)
			return
		}
		h.logger.Error().Err(err).Str("gym_id", id).Msg("Failed to load prices")
		writeError(w, http.StatusInternalServerError, "Internal server error", "", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, entry, h.logger)
}

// ListPricedGyms handles GET /v1/prices
func (h *PriceHandler) ListPricedGyms(w http.ResponseWriter, r *http.Request) {
	ids, err := h.priceService.ListPricedGyms()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list priced gyms")
		writeError(w, http.StatusInternalServerError, "Internal server error", "", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, models.PricedGymsResponse{IDs: ids}, h.logger)
}
