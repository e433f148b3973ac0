package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Jitesh050/TrackWise/internal/cache"
	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/engine"
	"github.com/Jitesh050/TrackWise/internal/metrics"
	"github.com/Jitesh050/TrackWise/internal/stations"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// TimetableHandler serves the static timetable: station directory, train
// catalog, per-train schedules, and itinerary search. The redis cache is
// optional; with it disabled every request computes from the index.
type TimetableHandler struct {
	idx      *timetable.Index
	cache    *cache.RedisCache
	cacheTTL time.Duration
	metrics  *metrics.Collector
	logger   *slog.Logger
}

func NewTimetableHandler(idx *timetable.Index, redisCache *cache.RedisCache, cacheTTL time.Duration, mcol *metrics.Collector, logger *slog.Logger) *TimetableHandler {
	return &TimetableHandler{
		idx:      idx,
		cache:    redisCache,
		cacheTTL: cacheTTL,
		metrics:  mcol,
		logger:   logger.With("handler", "timetable"),
	}
}

type StationsResponse struct {
	Stations []domain.Station `json:"stations"`
	Count    int              `json:"count"`
}

func (h *TimetableHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	var payload []domain.Station
	if h.cache != nil {
		if ok, err := h.cache.GetJSON(r.Context(), cache.KeyStations, &payload); err == nil && ok {
			h.countCache(true)
			respondJSON(w, http.StatusOK, StationsResponse{Stations: payload, Count: len(payload)})
			return
		}
		h.countCache(false)
	}

	payload = stations.Resolve(h.idx.StationCodes())
	if h.cache != nil {
		_ = h.cache.SetJSON(r.Context(), cache.KeyStations, payload, h.cacheTTL)
	}
	respondJSON(w, http.StatusOK, StationsResponse{Stations: payload, Count: len(payload)})
}

type CatalogResponse struct {
	Trains []domain.Train `json:"trains"`
	Count  int            `json:"count"`
}

func (h *TimetableHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		var trains []domain.Train
		if ok, err := h.cache.GetJSON(r.Context(), cache.KeyTrains, &trains); err == nil && ok {
			h.countCache(true)
			respondJSON(w, http.StatusOK, CatalogResponse{Trains: trains, Count: len(trains)})
			return
		}
		h.countCache(false)
	}

	trains := h.idx.AllTrains()
	if h.cache != nil {
		_ = h.cache.SetJSON(r.Context(), cache.KeyTrains, trains, h.cacheTTL)
	}
	respondJSON(w, http.StatusOK, CatalogResponse{Trains: trains, Count: len(trains)})
}

type ScheduleResponse struct {
	TrainNo string        `json:"trainNo"`
	Stops   []domain.Stop `json:"stops"`
}

func (h *TimetableHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	trainNo := r.PathValue("no")
	if trainNo == "" {
		respondError(w, http.StatusBadRequest, "missing train number")
		return
	}

	if h.cache != nil {
		var stops []domain.Stop
		if ok, err := h.cache.GetJSONCompressed(r.Context(), cache.KeySchedule(trainNo), &stops); err == nil && ok {
			h.countCache(true)
			respondJSON(w, http.StatusOK, ScheduleResponse{TrainNo: trainNo, Stops: stops})
			return
		}
		h.countCache(false)
	}

	stops, ok := h.idx.ScheduleOf(trainNo)
	if !ok {
		respondError(w, http.StatusNotFound, "schedule not found")
		return
	}

	if h.cache != nil {
		_ = h.cache.SetJSONCompressed(r.Context(), cache.KeySchedule(trainNo), stops, h.cacheTTL)
	}
	respondJSON(w, http.StatusOK, ScheduleResponse{TrainNo: trainNo, Stops: stops})
}

type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
	From    string                `json:"from"`
	To      string                `json:"to"`
}

func (h *TimetableHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from")))
	to := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("to")))

	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "missing from/to parameters")
		return
	}

	if h.metrics != nil {
		h.metrics.SearchRequests.Inc()
	}

	key := cache.KeySearch(from, to)
	if h.cache != nil {
		var results []domain.SearchResult
		if ok, err := h.cache.GetJSON(r.Context(), key, &results); err == nil && ok {
			h.countCache(true)
			respondJSON(w, http.StatusOK, SearchResponse{Results: results, Count: len(results), From: from, To: to})
			return
		}
		h.countCache(false)
	}

	results := engine.Search(h.idx, from, to)

	if h.cache != nil {
		_ = h.cache.SetJSON(r.Context(), key, results, h.cacheTTL)
	}

	h.logger.Debug("search completed",
		"from", from,
		"to", to,
		"results", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	respondJSON(w, http.StatusOK, SearchResponse{Results: results, Count: len(results), From: from, To: to})
}

func (h *TimetableHandler) countCache(hit bool) {
	if h.metrics == nil {
		return
	}
	if hit {
		h.metrics.CacheHits.Inc()
	} else {
		h.metrics.CacheMisses.Inc()
	}
}
