package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/studyhall-app/studyhall/internal/providers"
	"github.com/studyhall-app/studyhall/internal/storage"
	"github.com/studyhall-app/studyhall/internal/tutor"
)

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		SessionID string `json:"session_id"`
		NoteID    string `json:"note_id"`
		Message   string `json:"message"`
		Provider  string `json:"provider"`
		Model     string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		h.writeError(w, "message is required", http.StatusBadRequest)
		return
	}

	session, reply, err := h.tutor.Ask(r.Context(), request.SessionID, request.NoteID,
		request.Message, request.Provider, request.Model)
	if err != nil {
		// Client mistakes get client codes; 502 is reserved for the
		// provider call itself failing.
		switch {
		case errors.Is(err, tutor.ErrSessionNotFound), errors.Is(err, storage.ErrNotFound):
			h.writeError(w, "Chat failed: "+err.Error(), http.StatusNotFound)
		case errors.Is(err, tutor.ErrNoteNotReady):
			h.writeError(w, "Chat failed: "+err.Error(), http.StatusConflict)
		case errors.Is(err, providers.ErrUnknownProvider):
			h.writeError(w, "Chat failed: "+err.Error(), http.StatusBadRequest)
		default:
			h.writeError(w, "Chat failed: "+err.Error(), http.StatusBadGateway)
		}
		return
	}

	h.writeJSON(w, map[string]string{
		"session_id": session.ID,
		"reply":      reply,
	})
}

func (h *Handler) HandleChatDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, "/api/chat/")
	session, exists := h.tutor.Session(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, session)
}
