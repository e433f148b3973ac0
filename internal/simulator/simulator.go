package simulator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/engine"
	"github.com/Jitesh050/TrackWise/internal/metrics"
	"github.com/Jitesh050/TrackWise/internal/store"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// Broadcaster receives the deltas produced by each re-derivation.
type Broadcaster interface {
	Broadcast(deltas []domain.StatusDelta)
}

// Simulator owns the only mutable state around the pure engine: the
// simulated clock offset and the ordered override list. On every tick it
// derives a fresh snapshot set, reapplies overrides, installs the result in
// the snapshot store, and broadcasts the deltas.
type Simulator struct {
	idx         *timetable.Index
	store       *store.Store
	broadcaster Broadcaster
	logger      *slog.Logger
	metrics     *metrics.Collector

	baseMinutes  int           // time-of-day the clock anchors to
	tickInterval time.Duration // real time between re-derivations
	clockStep    time.Duration // simulated time added per tick

	mu        sync.Mutex
	offset    time.Duration
	overrides []domain.Override

	ready   bool
	readyMu sync.RWMutex
}

func New(idx *timetable.Index, st *store.Store, broadcaster Broadcaster, baseTime string, tickInterval, clockStep time.Duration, mcol *metrics.Collector, logger *slog.Logger) *Simulator {
	return &Simulator{
		idx:          idx,
		store:        st,
		broadcaster:  broadcaster,
		logger:       logger.With("component", "simulator"),
		metrics:      mcol,
		baseMinutes:  timetable.MinutesOf(baseTime),
		tickInterval: tickInterval,
		clockStep:    clockStep,
	}
}

// Run derives immediately, then re-derives every tick, advancing the
// simulated clock by one step per tick.
func (s *Simulator) Run(ctx context.Context) {
	s.Rederive()
	s.setReady(true)
	s.logger.Info("simulator ready",
		"trains", s.store.Count(),
		"base_minutes", s.baseMinutes,
		"tick_interval", s.tickInterval,
		"clock_step", s.clockStep,
	)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.offset += s.clockStep
			s.mu.Unlock()
			s.Rederive()
		}
	}
}

// Now is the current simulated instant: today at the base time plus the
// accumulated offset.
func (s *Simulator) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nowLocked()
}

func (s *Simulator) nowLocked() time.Time {
	t := time.Now()
	base := time.Date(t.Year(), t.Month(), t.Day(), s.baseMinutes/60, s.baseMinutes%60, 0, 0, t.Location())
	return base.Add(s.offset)
}

// Rederive recomputes all snapshots at the current simulated instant and
// publishes the resulting deltas. Repeated calls without a clock change are
// idempotent and produce no deltas.
func (s *Simulator) Rederive() {
	s.mu.Lock()
	now := s.nowLocked()
	cmds := make([]domain.Override, len(s.overrides))
	copy(cmds, s.overrides)
	offsetMin := s.offset.Minutes()
	s.mu.Unlock()

	start := time.Now()
	snapshots := engine.DeriveStatuses(s.idx, now)
	snapshots = engine.ApplyOverrides(snapshots, cmds)
	deltas := s.store.Replace(snapshots)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(deltas)
	}

	if s.metrics != nil {
		s.metrics.Derivations.Inc()
		s.metrics.DerivationDuration.Observe(time.Since(start).Seconds())
		s.metrics.TrainsTracked.Set(float64(len(snapshots)))
		s.metrics.ClockOffsetMinutes.Set(offsetMin)
		for status, n := range s.store.CountByStatus() {
			s.metrics.TrainsByState.WithLabelValues(string(status)).Set(float64(n))
		}
	}

	s.logger.Debug("derivation completed",
		"sim_time", now.Format("15:04"),
		"trains", len(snapshots),
		"overrides", len(cmds),
		"deltas", len(deltas),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// SetOverride registers or replaces the override for one train and takes
// effect immediately. Overrides persist across re-derivations until cleared.
func (s *Simulator) SetOverride(cmd domain.Override) {
	s.mu.Lock()
	replaced := false
	for i, o := range s.overrides {
		if o.TrainNo == cmd.TrainNo {
			s.overrides[i] = cmd
			replaced = true
			break
		}
	}
	if !replaced {
		s.overrides = append(s.overrides, cmd)
	}
	count := len(s.overrides)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.OverridesTotal.Inc()
		s.metrics.OverridesActive.Set(float64(count))
	}
	s.logger.Info("override set", "train_no", cmd.TrainNo, "status", cmd.Status, "delay_min", cmd.DelayMin)
	s.Rederive()
}

// ClearOverride drops a train's override; reports whether one existed.
func (s *Simulator) ClearOverride(trainNo string) bool {
	s.mu.Lock()
	found := false
	kept := s.overrides[:0]
	for _, o := range s.overrides {
		if o.TrainNo == trainNo {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	s.overrides = kept
	count := len(s.overrides)
	s.mu.Unlock()

	if !found {
		return false
	}
	if s.metrics != nil {
		s.metrics.OverridesActive.Set(float64(count))
	}
	s.logger.Info("override cleared", "train_no", trainNo)
	s.Rederive()
	return true
}

// Overrides returns the active override commands in application order.
func (s *Simulator) Overrides() []domain.Override {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Override, len(s.overrides))
	copy(result, s.overrides)
	return result
}

// Advance moves the simulated clock forward and re-derives.
func (s *Simulator) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.offset += d
	s.mu.Unlock()
	s.Rederive()
}

// Reset returns the clock to the base time, drops all overrides, and
// re-derives.
func (s *Simulator) Reset() {
	s.mu.Lock()
	s.offset = 0
	s.overrides = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.OverridesActive.Set(0)
	}
	s.logger.Info("simulation reset")
	s.Rederive()
}

// Offset reports the accumulated simulated-clock offset.
func (s *Simulator) Offset() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

func (s *Simulator) IsReady() bool {
	s.readyMu.RLock()
	defer s.readyMu.RUnlock()
	return s.ready
}

func (s *Simulator) setReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready
}
