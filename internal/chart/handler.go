package chart

import (
	"encoding/json"
	"net/http"

	"Czerny/internal/calc/ctdesign"
)

type Handler struct{}

type request struct {
	Input   ctdesign.Input `json:"input"`
	Samples int            `json:"samples"`
}

func (h *Handler) Dispersion(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ctdesign.Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	line := Dispersion(req.Input, res, req.Samples)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		http.Error(w, "Chart rendering error", http.StatusInternalServerError)
		return
	}
}
