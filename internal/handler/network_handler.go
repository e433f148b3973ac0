package handler

import (
	"net/http"

	"github.com/Jitesh050/TrackWise/internal/engine"
	"github.com/Jitesh050/TrackWise/internal/store"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// NetworkHandler serves the aggregated network view: trains grouped by the
// station they are heading to, plus the summary figures.
type NetworkHandler struct {
	store *store.Store
	idx   *timetable.Index
}

func NewNetworkHandler(st *store.Store, idx *timetable.Index) *NetworkHandler {
	return &NetworkHandler{store: st, idx: idx}
}

type NetworkResponse struct {
	Summary engine.NetworkSummary `json:"summary"`
	Groups  []engine.StationGroup `json:"groups"`
}

func (h *NetworkHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	snapshots := h.store.Values()

	respondJSON(w, http.StatusOK, NetworkResponse{
		Summary: engine.Summarize(snapshots, h.idx),
		Groups:  engine.GroupByNextStation(snapshots),
	})
}
