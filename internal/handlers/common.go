package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/studyhall-app/studyhall/internal/models"
	"github.com/studyhall-app/studyhall/internal/providers"
	"github.com/studyhall-app/studyhall/internal/storage"
	"github.com/studyhall-app/studyhall/internal/structurer"
	"github.com/studyhall-app/studyhall/internal/tutor"
)

type Handler struct {
	notes      storage.NoteStore
	sessions   *storage.SessionStore
	structurer *structurer.Service
	tutor      *tutor.Service
	uploadsDir string
}

func New(notes storage.NoteStore, registry providers.Registry) *Handler {
	sessions := storage.NewSessionStore()
	return &Handler{
		notes:      notes,
		sessions:   sessions,
		structurer: structurer.NewService(registry),
		tutor:      tutor.NewService(registry, notes, sessions),
		uploadsDir: "uploads",
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Note helpers
func (h *Handler) getNoteOrError(w http.ResponseWriter, r *http.Request, noteID string) (*models.Note, bool) {
	note, err := h.notes.Get(r.Context(), noteID)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, "Note not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.writeError(w, "Failed to load note: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return note, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(h.uploadsDir, 0755)
}
