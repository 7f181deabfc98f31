package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// SessionHandler serves chat session history.
type SessionHandler struct {
	logger   *observability.Logger
	sessions *storage.SessionRepository
	messages *storage.MessageRepository
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(logger *observability.Logger, sessions *storage.SessionRepository, messages *storage.MessageRepository) *SessionHandler {
	return &SessionHandler{logger: logger, sessions: sessions, messages: messages}
}

// List handles GET /api/v1/sessions?user_id=N, newest first.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	sessions, err := h.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("list sessions failed")
		writeError(w, http.StatusInternalServerError, "list failed", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   sessions,
	})
}

// Messages handles GET /api/v1/sessions/{id}/messages, oldest first.
func (h *SessionHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id", "")
		return
	}

	if _, err := h.sessions.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found", "")
			return
		}
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("resolve session failed")
		writeError(w, http.StatusInternalServerError, "get failed", "")
		return
	}

	messages, err := h.messages.ListBySession(r.Context(), id)
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("list messages failed")
		writeError(w, http.StatusInternalServerError, "list failed", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   messages,
	})
}
