package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// DestinationHandler serves the destination catalog.
type DestinationHandler struct {
	logger       *observability.Logger
	destinations *storage.DestinationRepository
}

// NewDestinationHandler creates a new destination handler.
func NewDestinationHandler(logger *observability.Logger, destinations *storage.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{logger: logger, destinations: destinations}
}

// List handles GET /api/v1/destinations.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.destinations.List(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("list destinations failed")
		writeError(w, http.StatusInternalServerError, "list failed", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   destinations,
	})
}

// Get handles GET /api/v1/destinations/{id}.
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	destination, err := h.destinations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "destination not found", "")
			return
		}
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("get destination failed")
		writeError(w, http.StatusInternalServerError, "get failed", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   destination,
	})
}
