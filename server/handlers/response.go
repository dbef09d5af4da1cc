package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"gf-server/models"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, message, details string, logger *zerolog.Logger) {
	writeJSON(w, status, models.ErrorResponse{Error: message, Details: details}, logger)
}
