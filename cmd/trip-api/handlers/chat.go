// Package handlers provides HTTP handlers for the TripEngine API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jembertrip/trip-engine/internal/chat"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// ChatHandler handles chat turns.
type ChatHandler struct {
	logger  *observability.Logger
	service *chat.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, service *chat.Service) *ChatHandler {
	return &ChatHandler{logger: logger, service: service}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	resp, err := h.service.Chat(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, "question is required", "")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "session not found", "")
		default:
			h.logger.WithContext(r.Context()).Error().Err(err).Msg("chat turn failed")
			writeError(w, http.StatusInternalServerError, "chat failed", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"status": "error",
		"error":  message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	writeJSON(w, status, resp)
}
