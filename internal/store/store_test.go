package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitesh050/TrackWise/internal/domain"
)

func snap(no string, status domain.Status, station string) domain.StatusSnapshot {
	return domain.StatusSnapshot{
		TrainNo:         no,
		TrainName:       "Train " + no,
		Status:          status,
		NextStationCode: station,
	}
}

func TestReplaceInitialDerivation(t *testing.T) {
	s := New()

	deltas := s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
		snap("2", domain.StatusBoarding, "CNB"),
	})

	require.Len(t, deltas, 2)
	for _, d := range deltas {
		assert.Equal(t, domain.DeltaUpdate, d.Type)
		require.NotNil(t, d.Snapshot)
	}
	assert.Equal(t, 2, s.Count())
	assert.False(t, s.LastUpdate().IsZero())
}

func TestReplaceEmitsOnlyChanges(t *testing.T) {
	s := New()
	first := []domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
		snap("2", domain.StatusBoarding, "CNB"),
	}
	s.Replace(first)

	// identical derivation: no deltas
	assert.Empty(t, s.Replace(first))

	// one train changes status
	second := []domain.StatusSnapshot{
		snap("1", domain.StatusDelayed, "AGRA"),
		snap("2", domain.StatusBoarding, "CNB"),
	}
	deltas := s.Replace(second)
	require.Len(t, deltas, 1)
	assert.Equal(t, domain.DeltaUpdate, deltas[0].Type)
	assert.Equal(t, "1", deltas[0].Snapshot.TrainNo)
	assert.Equal(t, "AGRA", deltas[0].Station)
}

func TestReplaceEmitsRemovals(t *testing.T) {
	s := New()
	s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
		snap("2", domain.StatusBoarding, "CNB"),
	})

	deltas := s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
	})
	require.Len(t, deltas, 1)
	assert.Equal(t, domain.DeltaRemove, deltas[0].Type)
	assert.Equal(t, "2", deltas[0].TrainNo)
	assert.Equal(t, "CNB", deltas[0].Station)

	_, ok := s.Get("2")
	assert.False(t, ok)
}

func TestListFilters(t *testing.T) {
	s := New()
	s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
		snap("2", domain.StatusDelayed, "AGRA"),
		snap("3", domain.StatusOnTime, "CNB"),
	})

	all := s.List(ListOptions{})
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].TrainNo)
	assert.Equal(t, "3", all[2].TrainNo)

	onTime := s.List(ListOptions{Status: domain.StatusOnTime})
	assert.Len(t, onTime, 2)

	agra := s.List(ListOptions{Station: "AGRA"})
	assert.Len(t, agra, 2)

	both := s.List(ListOptions{Status: domain.StatusOnTime, Station: "AGRA"})
	require.Len(t, both, 1)
	assert.Equal(t, "1", both[0].TrainNo)
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	s.Replace([]domain.StatusSnapshot{snap("1", domain.StatusOnTime, "AGRA")})

	got, ok := s.Get("1")
	require.True(t, ok)
	got.Status = domain.StatusCancelled

	again, _ := s.Get("1")
	assert.Equal(t, domain.StatusOnTime, again.Status)
}

func TestSnapshotForStations(t *testing.T) {
	s := New()
	s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, "AGRA"),
		snap("2", domain.StatusOnTime, "CNB"),
		snap("3", domain.StatusOnTime, "BPL"),
	})

	got := s.SnapshotForStations([]string{"AGRA", "CNB", "AGRA"})
	assert.Len(t, got, 2)

	assert.Empty(t, s.SnapshotForStations([]string{"XXX"}))
}

func TestCountByStatus(t *testing.T) {
	s := New()
	s.Replace([]domain.StatusSnapshot{
		snap("1", domain.StatusOnTime, ""),
		snap("2", domain.StatusOnTime, ""),
		snap("3", domain.StatusDelayed, ""),
	})

	counts := s.CountByStatus()
	assert.Equal(t, 2, counts[domain.StatusOnTime])
	assert.Equal(t, 1, counts[domain.StatusDelayed])
}
