package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/simulator"
	"github.com/Jitesh050/TrackWise/internal/store"
)

// SimHandler exposes the simulated clock and the manual status overrides.
type SimHandler struct {
	sim    *simulator.Simulator
	store  *store.Store
	logger *slog.Logger
}

func NewSimHandler(sim *simulator.Simulator, st *store.Store, logger *slog.Logger) *SimHandler {
	return &SimHandler{
		sim:    sim,
		store:  st,
		logger: logger.With("handler", "sim"),
	}
}

type ClockResponse struct {
	SimTime       string `json:"simTime"`
	OffsetMinutes int    `json:"offsetMinutes"`
}

func (h *SimHandler) clockResponse() ClockResponse {
	return ClockResponse{
		SimTime:       h.sim.Now().Format("15:04"),
		OffsetMinutes: int(h.sim.Offset().Minutes()),
	}
}

func (h *SimHandler) GetClock(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.clockResponse())
}

type advanceRequest struct {
	Minutes int `json:"minutes"`
}

func (h *SimHandler) AdvanceClock(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Minutes <= 0 {
		respondError(w, http.StatusBadRequest, "minutes must be positive")
		return
	}

	h.sim.Advance(time.Duration(req.Minutes) * time.Minute)
	h.logger.Info("clock advanced", "minutes", req.Minutes)
	respondJSON(w, http.StatusOK, h.clockResponse())
}

func (h *SimHandler) ResetClock(w http.ResponseWriter, r *http.Request) {
	h.sim.Reset()
	h.logger.Info("clock reset")
	respondJSON(w, http.StatusOK, h.clockResponse())
}

type overrideRequest struct {
	Status      string `json:"status"`
	DelayMin    int    `json:"delayMin"`
	NextStation string `json:"nextStation"`
}

func (h *SimHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	trainNo := r.PathValue("no")
	if trainNo == "" {
		respondError(w, http.StatusBadRequest, "missing train number")
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.Status(req.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", req.Status))
		return
	}
	if req.DelayMin < 0 {
		respondError(w, http.StatusBadRequest, "delayMin must not be negative")
		return
	}

	h.sim.SetOverride(domain.Override{
		TrainNo:     trainNo,
		Status:      status,
		DelayMin:    req.DelayMin,
		NextStation: req.NextStation,
	})

	snap, ok := h.store.Get(trainNo)
	if !ok {
		respondError(w, http.StatusNotFound, "train not found")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *SimHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	trainNo := r.PathValue("no")
	if trainNo == "" {
		respondError(w, http.StatusBadRequest, "missing train number")
		return
	}

	if !h.sim.ClearOverride(trainNo) {
		respondError(w, http.StatusNotFound, "no override for train")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type OverridesResponse struct {
	Overrides []domain.Override `json:"overrides"`
	Count     int               `json:"count"`
}

func (h *SimHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides := h.sim.Overrides()
	respondJSON(w, http.StatusOK, OverridesResponse{Overrides: overrides, Count: len(overrides)})
}
