package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// testIndex builds the canonical three-stop fixture: NDLS 08:00 -> AGRA
// 10:30/10:40 -> BPL 15:00, with cumulative distances 0/200/790.
func testIndex(t *testing.T) *timetable.Index {
	t.Helper()
	trains := []domain.Train{
		{TrainNo: "12002", TrainName: "Bhopal Express", Category: "Superfast", FromStation: "NDLS", ToStation: "BPL"},
	}
	stops := []domain.Stop{
		{TrainNo: "12002", StationID: "NDLS", Departure: "08:00", Seq: 1, CumDistanceKm: 0},
		{TrainNo: "12002", StationID: "AGRA", Arrival: "10:30", Departure: "10:40", HaltMin: 10, Seq: 2, CumDistanceKm: 200},
		{TrainNo: "12002", StationID: "BPL", Arrival: "15:00", Seq: 3, CumDistanceKm: 790},
	}
	idx, err := timetable.Load(trains, stops)
	require.NoError(t, err)
	return idx
}

func at(hhmm string) time.Time {
	parsed, _ := time.Parse("15:04", hhmm)
	return time.Date(2026, 3, 10, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func deriveSingle(t *testing.T, idx *timetable.Index, now time.Time) domain.StatusSnapshot {
	t.Helper()
	snaps := DeriveStatuses(idx, now)
	require.Len(t, snaps, 1)
	return snaps[0]
}

func TestDeriveBeforeFirstDeparture(t *testing.T) {
	snap := deriveSingle(t, testIndex(t), at("07:30"))

	assert.Equal(t, domain.StatusBoarding, snap.Status)
	assert.Equal(t, "Agra Cantt", snap.NextStation)
	assert.Equal(t, "AGRA", snap.NextStationCode)
	assert.Equal(t, "08:00", snap.Departure)
	assert.Equal(t, "15:00", snap.Arrival)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, 0, snap.DelayMin)
}

func TestDeriveMidFirstLeg(t *testing.T) {
	snap := deriveSingle(t, testIndex(t), at("09:15"))

	assert.Equal(t, domain.StatusOnTime, snap.Status)
	assert.Equal(t, "Agra Cantt", snap.NextStation)
	assert.Equal(t, "AGRA", snap.NextStationCode)
	// 75 of 150 minutes into leg 0 of 2 legs
	assert.Equal(t, 25, snap.Progress)
}

func TestDeriveSecondLeg(t *testing.T) {
	snap := deriveSingle(t, testIndex(t), at("11:00"))

	assert.Equal(t, domain.StatusOnTime, snap.Status)
	assert.Equal(t, "Bhopal Junction", snap.NextStation)
	assert.Equal(t, "BPL", snap.NextStationCode)
	// departure reflects the leg origin, not the journey origin
	assert.Equal(t, "10:40", snap.Departure)
	assert.Equal(t, 54, snap.Progress)
}

func TestDeriveDelayedPastExpectedArrival(t *testing.T) {
	snap := deriveSingle(t, testIndex(t), at("15:30"))

	assert.Equal(t, domain.StatusDelayed, snap.Status)
	assert.Equal(t, 30, snap.DelayMin)
	assert.Equal(t, "Bhopal Junction", snap.NextStation)
}

func TestDeriveArrivedAtTerminal(t *testing.T) {
	trains := []domain.Train{{TrainNo: "12028", TrainName: "Chandigarh Shatabdi", FromStation: "NDLS", ToStation: "CDG"}}
	stops := []domain.Stop{
		{TrainNo: "12028", StationID: "NDLS", Departure: "07:40", Seq: 1},
		{TrainNo: "12028", StationID: "CDG", Arrival: "11:05", Departure: "11:05", Seq: 2},
	}
	idx, err := timetable.Load(trains, stops)
	require.NoError(t, err)

	snap := deriveSingle(t, idx, at("12:00"))
	assert.Equal(t, domain.StatusArrived, snap.Status)
	assert.Equal(t, domain.NextStationTerminal, snap.NextStation)
	assert.Equal(t, 100, snap.Progress)
}

func TestDeriveSkipsTrainsWithFewerThanTwoStops(t *testing.T) {
	trains := []domain.Train{
		{TrainNo: "1", TrainName: "Full"},
		{TrainNo: "2", TrainName: "Lonely"},
		{TrainNo: "3", TrainName: "Ghost"},
	}
	stops := []domain.Stop{
		{TrainNo: "1", StationID: "NDLS", Departure: "08:00", Seq: 1},
		{TrainNo: "1", StationID: "BPL", Arrival: "15:00", Seq: 2},
		{TrainNo: "2", StationID: "NDLS", Departure: "09:00", Seq: 1},
	}
	idx, err := timetable.Load(trains, stops)
	require.NoError(t, err)

	snaps := DeriveStatuses(idx, at("10:00"))
	require.Len(t, snaps, 1)
	assert.Equal(t, "1", snaps[0].TrainNo)
}

func TestDeriveHonorsDayOffset(t *testing.T) {
	trains := []domain.Train{{TrainNo: "12952", TrainName: "Overnight", FromStation: "NDLS", ToStation: "BCT"}}
	stops := []domain.Stop{
		{TrainNo: "12952", StationID: "NDLS", Departure: "16:25", Seq: 1, DayOffset: 0},
		{TrainNo: "12952", StationID: "ADI", Arrival: "04:10", Departure: "04:20", Seq: 2, DayOffset: 1},
		{TrainNo: "12952", StationID: "BCT", Arrival: "08:15", Seq: 3, DayOffset: 1},
	}
	idx, err := timetable.Load(trains, stops)
	require.NoError(t, err)

	// 23:00 on departure day: still on leg 0, not delayed, since the next
	// stop's 04:10 lives on the following day of the journey timeline.
	snap := deriveSingle(t, idx, at("23:00"))
	assert.Equal(t, domain.StatusOnTime, snap.Status)
	assert.Equal(t, 0, snap.DelayMin)
	assert.Equal(t, "ADI", snap.NextStationCode)
}

func TestDeriveIsPure(t *testing.T) {
	idx := testIndex(t)
	now := at("11:00")

	first := DeriveStatuses(idx, now)
	second := DeriveStatuses(idx, now)
	assert.Equal(t, first, second)
}

func TestProgressMonotonicOverJourney(t *testing.T) {
	idx := testIndex(t)

	prev := -1
	for min := 7 * 60; min <= 16*60; min += 5 {
		now := time.Date(2026, 3, 10, min/60, min%60, 0, 0, time.UTC)
		snap := deriveSingle(t, idx, now)
		require.GreaterOrEqual(t, snap.Progress, prev, "progress regressed at %02d:%02d", min/60, min%60)
		require.LessOrEqual(t, snap.Progress, 100)
		prev = snap.Progress
	}
}

func TestPlatformFromTrailingDigit(t *testing.T) {
	assert.Equal(t, 3, platformOf("12002"))
	assert.Equal(t, 7, platformOf("12626"))
	assert.Equal(t, 1, platformOf("ABC"))
	assert.Equal(t, 1, platformOf(""))
}
