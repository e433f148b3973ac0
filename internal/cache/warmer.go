package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jitesh050/TrackWise/internal/stations"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// CacheWarmer preloads the static lookups (station directory, per-train
// schedules) so the first requests after startup hit warm entries.
type CacheWarmer struct {
	cache  *RedisCache
	idx    *timetable.Index
	ttl    time.Duration
	logger *slog.Logger
}

func NewCacheWarmer(cache *RedisCache, idx *timetable.Index, ttl time.Duration, logger *slog.Logger) *CacheWarmer {
	return &CacheWarmer{
		cache:  cache,
		idx:    idx,
		ttl:    ttl,
		logger: logger.With("component", "cache_warmer"),
	}
}

func (w *CacheWarmer) WarmAll(ctx context.Context) error {
	start := time.Now()
	w.logger.Info("starting cache warming")

	if err := w.warmStations(ctx); err != nil {
		w.logger.Error("failed to warm stations", "error", err)
	}
	if err := w.warmTrains(ctx); err != nil {
		w.logger.Error("failed to warm trains", "error", err)
	}
	w.warmSchedules(ctx)

	w.logger.Info("cache warming completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *CacheWarmer) warmStations(ctx context.Context) error {
	payload := stations.Resolve(w.idx.StationCodes())
	return w.cache.SetJSON(ctx, KeyStations, payload, w.ttl)
}

func (w *CacheWarmer) warmTrains(ctx context.Context) error {
	return w.cache.SetJSON(ctx, KeyTrains, w.idx.AllTrains(), w.ttl)
}

func (w *CacheWarmer) warmSchedules(ctx context.Context) {
	warmed := 0
	for _, tr := range w.idx.AllTrains() {
		schedule, ok := w.idx.ScheduleOf(tr.TrainNo)
		if !ok {
			continue
		}
		if err := w.cache.SetJSONCompressed(ctx, KeySchedule(tr.TrainNo), schedule, w.ttl); err != nil {
			w.logger.Debug("failed to cache schedule", "train_no", tr.TrainNo, "error", err)
			continue
		}
		warmed++
	}
	w.logger.Info("warmed schedules", "trains_warmed", warmed, "total_trains", w.idx.TrainCount())
}
