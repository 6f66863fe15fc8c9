// Package designs stores computed spectrometer designs per user: a saved
// design is the input record plus the full computed parameter set, kept as
// JSON so older designs survive schema additions.
package designs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"Czerny/internal/auth"
	"Czerny/internal/calc/ctdesign"
	"Czerny/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

type saveRequest struct {
	Name  string         `json:"name"`
	Input ctdesign.Input `json:"input"`
}

type storedDesign struct {
	Input    ctdesign.Input  `json:"input"`
	Computed ctdesign.Result `json:"computed"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Design name required", http.StatusBadRequest)
		return
	}

	res, err := ctdesign.Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(storedDesign{Input: req.Input, Computed: res})
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	id, err := h.Repo.SaveDesign(r.Context(), userID, req.Name, payload)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	metas, err := h.Repo.ListDesigns(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metas)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	designID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Bad design id", http.StatusBadRequest)
		return
	}

	rec, err := h.Repo.GetDesign(r.Context(), userID, designID)
	if err != nil {
		http.Error(w, "Design not found", http.StatusNotFound)
		return
	}

	var stored storedDesign
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		http.Error(w, "Corrupt design payload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		repo.DesignMeta
		storedDesign
	}{rec.DesignMeta, stored})
}
