package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/store"
)

// StatusHandler serves the latest derived snapshots.
type StatusHandler struct {
	store *store.Store
}

func NewStatusHandler(store *store.Store) *StatusHandler {
	return &StatusHandler{store: store}
}

type TrainsResponse struct {
	Trains     []*domain.StatusSnapshot `json:"trains"`
	Count      int                      `json:"count"`
	ServerTime time.Time                `json:"serverTime"`
}

func (h *StatusHandler) ListTrains(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := domain.Status(statusStr)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, "invalid status parameter")
			return
		}
		opts.Status = status
	}

	opts.Station = strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("station")))

	trains := h.store.List(opts)

	respondJSON(w, http.StatusOK, TrainsResponse{
		Trains:     trains,
		Count:      len(trains),
		ServerTime: time.Now(),
	})
}

func (h *StatusHandler) GetTrain(w http.ResponseWriter, r *http.Request) {
	trainNo := r.PathValue("no")
	if trainNo == "" {
		respondError(w, http.StatusBadRequest, "missing train number")
		return
	}

	snap, ok := h.store.Get(trainNo)
	if !ok {
		respondError(w, http.StatusNotFound, "train not found")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
