package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jitesh050/TrackWise/internal/cache"
	"github.com/Jitesh050/TrackWise/internal/config"
	"github.com/Jitesh050/TrackWise/internal/handler"
	"github.com/Jitesh050/TrackWise/internal/hub"
	"github.com/Jitesh050/TrackWise/internal/metrics"
	"github.com/Jitesh050/TrackWise/internal/middleware"
	"github.com/Jitesh050/TrackWise/internal/simulator"
	"github.com/Jitesh050/TrackWise/internal/store"
	"github.com/Jitesh050/TrackWise/internal/timetable"
	"github.com/Jitesh050/TrackWise/pkg/dataset"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting trackwise server",
		"log_level", cfg.LogLevel.String(),
		"http_addr", cfg.HTTPAddr,
		"data_dir", cfg.DataDir,
		"redis_enabled", cfg.RedisEnabled,
	)

	parser := dataset.NewParser(logger)
	trains, stops, err := parser.LoadDir(cfg.DataDir)
	if err != nil {
		logger.Error("failed to load timetable data", "error", err)
		os.Exit(1)
	}

	idx, err := timetable.Load(trains, stops)
	if err != nil {
		logger.Error("failed to build timetable index", "error", err)
		os.Exit(1)
	}
	logger.Info("timetable loaded",
		"trains", idx.TrainCount(),
		"stops", idx.StopCount(),
		"stations", len(idx.StationCodes()),
	)

	mcol := metrics.NewCollector()

	snapStore := store.New()
	wsHub := hub.NewHub(logger)
	sim := simulator.New(idx, snapStore, wsHub, cfg.SimBase, cfg.TickInterval, cfg.ClockStep, mcol, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisCache *cache.RedisCache
	if cfg.RedisEnabled {
		redisCache, err = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("redis unavailable, serving without cache", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			if cfg.CacheWarmOnStart {
				warmer := cache.NewCacheWarmer(redisCache, idx, cfg.CacheTTL, logger)
				go warmer.WarmAll(ctx)
			}
		}
	}

	statusHandler := handler.NewStatusHandler(snapStore)
	timetableHandler := handler.NewTimetableHandler(idx, redisCache, cfg.CacheTTL, mcol, logger)
	simHandler := handler.NewSimHandler(sim, snapStore, logger)
	networkHandler := handler.NewNetworkHandler(snapStore, idx)
	statsHandler := handler.NewStatsHandler(snapStore, idx, sim)
	wsHandler := handler.NewWSHandler(wsHub, snapStore, mcol, logger)
	healthHandler := handler.NewHealthHandler(sim, snapStore)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/trains", statusHandler.ListTrains)
	mux.HandleFunc("GET /v1/trains/{no}", statusHandler.GetTrain)
	mux.HandleFunc("GET /v1/trains/{no}/schedule", timetableHandler.GetSchedule)
	mux.HandleFunc("POST /v1/trains/{no}/override", simHandler.SetOverride)
	mux.HandleFunc("DELETE /v1/trains/{no}/override", simHandler.ClearOverride)
	mux.HandleFunc("GET /v1/overrides", simHandler.ListOverrides)

	mux.HandleFunc("GET /v1/stations", timetableHandler.ListStations)
	mux.HandleFunc("GET /v1/timetable/trains", timetableHandler.ListCatalog)
	mux.HandleFunc("GET /v1/search", timetableHandler.Search)
	mux.HandleFunc("GET /v1/network", networkHandler.GetNetwork)

	mux.HandleFunc("GET /v1/clock", simHandler.GetClock)
	mux.HandleFunc("POST /v1/clock/advance", simHandler.AdvanceClock)
	mux.HandleFunc("POST /v1/clock/reset", simHandler.ResetClock)

	mux.HandleFunc("/v1/ws", wsHandler.ServeWS)

	mux.HandleFunc("GET /v1/stats", statsHandler.GetStats)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)

	limiter := middleware.NewRateLimiter(
		cfg.RateLimitPerWindow,
		cfg.RateLimitWindow,
		cfg.RateLimitWhitelist,
		handler.ServerStats.IncRateLimitBlocked,
		logger,
	)

	var root http.Handler = mux
	root = handler.GzipMiddleware(root)
	root = handler.CORSMiddleware(root)
	root = limiter.Middleware(root)
	root = handler.RequestCountMiddleware(root)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go wsHub.Run(ctx)
	go sim.Run(ctx)

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = mcol.Serve(cfg.MetricsAddr, logger)
	}

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
