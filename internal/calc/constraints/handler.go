package constraints

import (
	"encoding/json"
	"net/http"

	"Czerny/internal/calc/ctdesign"
)

type Handler struct{}

type request struct {
	Input   ctdesign.Input `json:"input"`
	Options Options        `json:"options"`
}

type response struct {
	Computed ctdesign.Result `json:"computed"`
	Bounds   Bounds          `json:"bounds"`
}

func (h *Handler) Derive(w http.ResponseWriter, r *http.Request) {
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
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response{
		Computed: res,
		Bounds:   Derive(req.Input, res, req.Options),
	})
}
