package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall-app/studyhall/internal/calc"
)

func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Expression string `json:"expression"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := calc.Evaluate(request.Expression)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]any{
		"expression": request.Expression,
		"result":     result,
	})
}

func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Value float64 `json:"value"`
		From  string  `json:"from"`
		To    string  `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.From == "" || request.To == "" {
		h.writeError(w, "from and to units are required", http.StatusBadRequest)
		return
	}

	result, unit, err := calc.Convert(request.Value, request.From, request.To)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]any{
		"result": result,
		"unit":   unit,
	})
}

// HandleUnits lists known units per dimension for the converter's pickers.
func (h *Handler) HandleUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	units, err := calc.Units()
	if err != nil {
		h.writeError(w, "Failed to load unit table: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, units)
}
