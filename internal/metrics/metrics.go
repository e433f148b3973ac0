package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so the server's metrics stay isolated
// from anything else a host process registers.
type Collector struct {
	reg *prometheus.Registry

	TrainsTracked prometheus.Gauge
	TrainsByState *prometheus.GaugeVec

	Derivations        prometheus.Counter
	DerivationDuration prometheus.Histogram

	OverridesActive prometheus.Gauge
	OverridesTotal  prometheus.Counter

	ClockOffsetMinutes prometheus.Gauge

	WSConnections prometheus.Gauge

	SearchRequests prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		TrainsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trackwise_trains_tracked",
			Help: "Number of trains in the latest derivation.",
		}),
		TrainsByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trackwise_trains_by_status",
			Help: "Trains in the latest derivation, by status.",
		}, []string{"status"}),
		Derivations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackwise_derivations_total",
			Help: "Total status derivations performed.",
		}),
		DerivationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trackwise_derivation_duration_seconds",
			Help:    "Duration of one full status derivation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		OverridesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trackwise_overrides_active",
			Help: "Override commands currently applied after each derivation.",
		}),
		OverridesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackwise_overrides_total",
			Help: "Total override commands accepted.",
		}),
		ClockOffsetMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trackwise_clock_offset_minutes",
			Help: "Simulated clock offset from the base time, in minutes.",
		}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trackwise_ws_connections",
			Help: "Open websocket connections.",
		}),
		SearchRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackwise_search_requests_total",
			Help: "Total itinerary search requests.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackwise_cache_hits_total",
			Help: "Total cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackwise_cache_misses_total",
			Help: "Total cache misses.",
		}),
	}

	reg.MustRegister(
		c.TrainsTracked, c.TrainsByState,
		c.Derivations, c.DerivationDuration,
		c.OverridesActive, c.OverridesTotal,
		c.ClockOffsetMinutes, c.WSConnections,
		c.SearchRequests, c.CacheHits, c.CacheMisses,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", addr)
	return srv
}
