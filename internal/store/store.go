package store

import (
	"sync"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
)

// ListOptions filters snapshot listings.
type ListOptions struct {
	Status  domain.Status
	Station string // next-station code
}

// Store holds the latest derived snapshot list. Replace swaps in a whole
// derivation at once; reads copy so callers never see in-place mutation.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.StatusSnapshot
	order     []string
	byStation map[string]map[string]struct{}

	lastUpdate time.Time
}

func New() *Store {
	return &Store{
		snapshots: make(map[string]*domain.StatusSnapshot),
		byStation: make(map[string]map[string]struct{}),
	}
}

// Replace installs a fresh derivation and returns deltas relative to the
// previous one: an update per new or changed train, a remove per train that
// disappeared from the derivation.
func (s *Store) Replace(snapshots []domain.StatusSnapshot) []domain.StatusDelta {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*domain.StatusSnapshot, len(snapshots))
	order := make([]string, 0, len(snapshots))
	byStation := make(map[string]map[string]struct{})

	var deltas []domain.StatusDelta
	for i := range snapshots {
		snap := snapshots[i]
		next[snap.TrainNo] = &snap
		order = append(order, snap.TrainNo)

		if snap.NextStationCode != "" {
			if byStation[snap.NextStationCode] == nil {
				byStation[snap.NextStationCode] = make(map[string]struct{})
			}
			byStation[snap.NextStationCode][snap.TrainNo] = struct{}{}
		}

		prev, existed := s.snapshots[snap.TrainNo]
		if !existed || *prev != snap {
			c := snap
			deltas = append(deltas, domain.StatusDelta{
				Type:     domain.DeltaUpdate,
				Snapshot: &c,
				Station:  snap.NextStationCode,
			})
		}
	}

	for no, prev := range s.snapshots {
		if _, ok := next[no]; !ok {
			deltas = append(deltas, domain.StatusDelta{
				Type:    domain.DeltaRemove,
				TrainNo: no,
				Station: prev.NextStationCode,
			})
		}
	}

	s.snapshots = next
	s.order = order
	s.byStation = byStation
	s.lastUpdate = time.Now()

	return deltas
}

// Get returns one snapshot by train number.
func (s *Store) Get(trainNo string) (*domain.StatusSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[trainNo]
	if !ok {
		return nil, false
	}
	c := *snap
	return &c, true
}

// List returns snapshots in derivation order, filtered by opts.
func (s *Store) List(opts ListOptions) []*domain.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StatusSnapshot, 0, len(s.order))
	for _, no := range s.order {
		snap := s.snapshots[no]
		if opts.Status != "" && snap.Status != opts.Status {
			continue
		}
		if opts.Station != "" && snap.NextStationCode != opts.Station {
			continue
		}
		c := *snap
		result = append(result, &c)
	}
	return result
}

// Snapshot returns every stored snapshot in derivation order.
func (s *Store) Snapshot() []*domain.StatusSnapshot {
	return s.List(ListOptions{})
}

// SnapshotForStations returns snapshots whose next-station code is in the
// given set, deduplicated.
func (s *Store) SnapshotForStations(codes []string) []*domain.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var result []*domain.StatusSnapshot
	for _, code := range codes {
		for no := range s.byStation[code] {
			if _, dup := seen[no]; dup {
				continue
			}
			seen[no] = struct{}{}
			c := *s.snapshots[no]
			result = append(result, &c)
		}
	}
	return result
}

// Values returns the snapshot list by value for aggregation, in derivation
// order.
func (s *Store) Values() []domain.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.StatusSnapshot, 0, len(s.order))
	for _, no := range s.order {
		result = append(result, *s.snapshots[no])
	}
	return result
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// CountByStatus tallies stored snapshots per status value.
func (s *Store) CountByStatus() map[domain.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.Status]int)
	for _, snap := range s.snapshots {
		counts[snap.Status]++
	}
	return counts
}

func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}
