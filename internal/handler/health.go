package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jitesh050/TrackWise/internal/simulator"
	"github.com/Jitesh050/TrackWise/internal/store"
)

type HealthHandler struct {
	sim   *simulator.Simulator
	store *store.Store
}

func NewHealthHandler(sim *simulator.Simulator, s *store.Store) *HealthHandler {
	return &HealthHandler{
		sim:   sim,
		store: s,
	}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type ReadyResponse struct {
	Ready      bool      `json:"ready"`
	TrainCount int       `json:"trainCount"`
	ServerTime time.Time `json:"serverTime"`
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ready := h.sim.IsReady()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ReadyResponse{
		Ready:      ready,
		TrainCount: h.store.Count(),
		ServerTime: time.Now(),
	})
}
