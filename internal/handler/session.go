package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SameerKamani/SL-IT-AI/internal/middleware"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
	"github.com/SameerKamani/SL-IT-AI/internal/session"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
	"github.com/SameerKamani/SL-IT-AI/pkg/metrics"
)

// SessionHandler handles session inspection and clearing.
type SessionHandler struct {
	store  *session.Store
	logger *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store *session.Store, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		store:  store,
		logger: log,
	}
}

// Get handles GET /api/session/{session_id}. Unknown sessions return
// an empty history and zero count, not an error.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history := h.store.History(sessionID)
	writeJSON(w, http.StatusOK, model.SessionResponse{
		SessionID:           sessionID,
		ConversationHistory: history,
		MessageCount:        len(history),
	})
}

// Clear handles DELETE /api/session/{session_id}. Clearing an
// unknown session is a no-op and still confirms.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.Clear(sessionID)
	metrics.SessionsActive.Set(float64(h.store.Len()))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s cleared successfully", sessionID),
	})
}
