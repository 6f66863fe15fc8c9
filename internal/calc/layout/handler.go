package layout

import (
	"encoding/json"
	"net/http"

	"Czerny/internal/calc/ctdesign"
)

type Handler struct{}

func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	var input ctdesign.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ctdesign.Calculate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Build(input, res))
}
