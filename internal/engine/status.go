package engine

import (
	"math"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/stations"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// DeriveStatuses computes a fresh snapshot for every train with at least two
// stops. It is a pure function of the index and the supplied instant:
// repeated calls with the same arguments return identical results. Trains
// with fewer than two stops have no derivable schedule and are excluded.
//
// All stop times are compared on the journey timeline (day_offset folded
// into absolute minutes); now is reduced to minutes since midnight of its
// own calendar day.
func DeriveStatuses(idx *timetable.Index, now time.Time) []domain.StatusSnapshot {
	nowMin := minutesSinceMidnight(now)
	trains := idx.AllTrains()
	result := make([]domain.StatusSnapshot, 0, len(trains))

	for _, tr := range trains {
		stops, ok := idx.ScheduleOf(tr.TrainNo)
		if !ok || len(stops) < 2 {
			continue
		}
		result = append(result, deriveOne(tr, stops, nowMin))
	}
	return result
}

func deriveOne(tr domain.Train, stops []domain.Stop, nowMin float64) domain.StatusSnapshot {
	origin := stops[0]
	terminus := stops[len(stops)-1]

	snap := domain.StatusSnapshot{
		TrainNo:   tr.TrainNo,
		TrainName: tr.TrainName,
		From:      stations.Name(tr.FromStation),
		To:        stations.Name(tr.ToStation),
		Departure: origin.Departure,
		Arrival:   terminus.Arrival,
		Status:    domain.StatusOnTime,
		Platform:  platformOf(tr.TrainNo),
	}

	// Current leg: the last stop already departed as of nowMin.
	legIdx := -1
	for i, st := range stops {
		if st.Departure == "" {
			continue
		}
		if float64(timetable.AbsoluteMinutes(st.Departure, st.DayOffset)) <= nowMin {
			legIdx = i
		} else {
			break
		}
	}

	switch {
	case legIdx == -1:
		snap.Status = domain.StatusBoarding
		snap.NextStation = stations.Name(stops[1].StationID)
		snap.NextStationCode = stops[1].StationID

	case legIdx < len(stops)-1:
		next := stops[legIdx+1]
		snap.NextStation = stations.Name(next.StationID)
		snap.NextStationCode = next.StationID
		snap.Departure = stops[legIdx].Departure

		expected := next.Arrival
		if expected == "" {
			expected = next.Departure
		}
		expectedAbs := float64(timetable.AbsoluteMinutes(expected, next.DayOffset))
		if nowMin > expectedAbs {
			snap.Status = domain.StatusDelayed
			snap.DelayMin = int(math.Floor(nowMin - expectedAbs))
		}

	default:
		snap.Status = domain.StatusArrived
		snap.NextStation = domain.NextStationTerminal
	}

	snap.Progress = progressOf(stops, legIdx, nowMin, snap.Status)
	return snap
}

// progressOf interpolates journey completion within the active leg. The
// pre-departure case uses leg 0 as the bounding leg; clamping keeps the
// fraction at zero until the first departure.
func progressOf(stops []domain.Stop, legIdx int, nowMin float64, status domain.Status) int {
	if status == domain.StatusArrived {
		return 100
	}

	denom := float64(len(stops) - 1)
	if denom < 1 {
		denom = 1
	}

	li := legIdx
	if li < 0 {
		li = 0
	}
	cur := stops[li]
	nextIdx := li + 1
	if nextIdx > len(stops)-1 {
		nextIdx = len(stops) - 1
	}
	next := stops[nextIdx]

	legStartStr := cur.Departure
	if legStartStr == "" {
		legStartStr = cur.Arrival
	}
	legStart := float64(timetable.AbsoluteMinutes(legStartStr, cur.DayOffset))

	legEnd := legStart
	if next.Arrival != "" {
		legEnd = float64(timetable.AbsoluteMinutes(next.Arrival, next.DayOffset))
	} else if next.Departure != "" {
		legEnd = float64(timetable.AbsoluteMinutes(next.Departure, next.DayOffset))
	}

	legFrac := 0.0
	if legEnd > legStart {
		legFrac = (nowMin - legStart) / (legEnd - legStart)
		legFrac = math.Min(1, math.Max(0, legFrac))
	}

	base := float64(li) / denom
	return int(math.Round(math.Min(1, math.Max(0, base+legFrac/denom)) * 100))
}

// platformOf derives the cosmetic platform number from the train number's
// trailing digit.
func platformOf(trainNo string) int {
	for i := len(trainNo) - 1; i >= 0; i-- {
		if c := trainNo[i]; c >= '0' && c <= '9' {
			return int(c-'0')%10 + 1
		}
	}
	return 1
}

func minutesSinceMidnight(t time.Time) float64 {
	return float64(t.Hour())*60 + float64(t.Minute()) + float64(t.Second())/60
}
