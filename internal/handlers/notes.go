package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/studyhall-app/studyhall/internal/mathrender"
	"github.com/studyhall-app/studyhall/internal/models"
)

func (h *Handler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		notes, err := h.notes.List(r.Context())
		if err != nil {
			h.writeError(w, "Failed to list notes: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if notes == nil {
			notes = []*models.Note{}
		}
		h.writeJSON(w, notes)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleNoteDetail serves /api/notes/{id} and the {id}/status,
// {id}/rendered, and {id}/file subresources.
func (h *Handler) HandleNoteDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	noteID, sub, _ := strings.Cut(rest, "/")
	if noteID == "" {
		h.writeError(w, "Note ID required", http.StatusBadRequest)
		return
	}

	switch sub {
	case "":
		h.handleNote(w, r, noteID)
	case "status":
		h.handleNoteStatus(w, r, noteID)
	case "rendered":
		h.handleNoteRendered(w, r, noteID)
	case "file":
		h.handleNoteFile(w, r, noteID)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleNote(w http.ResponseWriter, r *http.Request, noteID string) {
	note, ok := h.getNoteOrError(w, r, noteID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, note)
	case "PUT":
		// Title is the only client-editable field
		var update struct {
			Title string `json:"title"`
		}
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(update.Title) == "" {
			h.writeError(w, "title is required", http.StatusBadRequest)
			return
		}
		note.Title = strings.TrimSpace(update.Title)
		if err := h.notes.Update(r.Context(), note); err != nil {
			h.writeError(w, "Failed to update note: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, note)
	case "DELETE":
		if err := h.notes.Delete(r.Context(), noteID); err != nil {
			h.writeError(w, "Failed to delete note: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.removeUploadedFiles(noteID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleNoteStatus is the lightweight polling endpoint the uploader UI
// hits while a document is processing.
func (h *Handler) handleNoteStatus(w http.ResponseWriter, r *http.Request, noteID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	note, ok := h.getNoteOrError(w, r, noteID)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]string{
		"id":     note.ID,
		"status": note.Status,
		"error":  note.ErrorMessage,
	})
}

func (h *Handler) handleNoteRendered(w http.ResponseWriter, r *http.Request, noteID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	note, ok := h.getNoteOrError(w, r, noteID)
	if !ok {
		return
	}
	if note.Status != models.StatusReady {
		h.writeError(w, "Note is not ready (status: "+note.Status+")", http.StatusConflict)
		return
	}

	html, err := mathrender.Render(note.ProcessedText)
	if err != nil {
		h.writeError(w, "Failed to render note: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		h.writeError(w, "Failed to write response: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleNoteFile serves the original uploaded document bytes.
func (h *Handler) handleNoteFile(w http.ResponseWriter, r *http.Request, noteID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	note, ok := h.getNoteOrError(w, r, noteID)
	if !ok {
		return
	}

	matches, err := filepath.Glob(filepath.Join(h.uploadsDir, noteID+"_*"))
	if err != nil || len(matches) == 0 {
		h.writeError(w, "Original file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+note.Filename+`"`)
	http.ServeFile(w, r, matches[0])
}

func (h *Handler) removeUploadedFiles(noteID string) {
	matches, err := filepath.Glob(filepath.Join(h.uploadsDir, noteID+"_*"))
	if err != nil {
		return
	}
	for _, path := range matches {
		_ = os.Remove(path)
	}
}
