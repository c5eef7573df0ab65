package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall-app/studyhall/internal/mathrender"
)

// HandleRender converts markdown with $...$ math spans to HTML. Used by
// the chat view to render tutor replies.
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Markdown string `json:"markdown"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	html, err := mathrender.Render(request.Markdown)
	if err != nil {
		h.writeError(w, "Failed to render markdown: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"html": html,
	})
}
