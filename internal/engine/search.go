package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

const (
	basePricePerKm    = 0.7
	minPrice          = 50
	defaultDistanceKm = 300
	maxSearchResults  = 20
)

// categoryMultipliers is checked by substring match in precedence order.
var categoryMultipliers = []struct {
	substr string
	mult   float64
}{
	{"Vande Bharat", 2.2},
	{"Rajdhani", 2.0},
	{"Tejas", 1.9},
	{"Shatabdi", 1.8},
	{"Superfast", 1.4},
}

// Search returns trains that visit origin strictly before destination in
// their own stop order. Matching is case-insensitive and whitespace-trimmed.
// Results are sorted by departure time-of-day and truncated to the first 20.
func Search(idx *timetable.Index, origin, destination string) []domain.SearchResult {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if origin == "" || destination == "" {
		return nil
	}

	var results []domain.SearchResult
	for _, tr := range idx.AllTrains() {
		stops, ok := idx.ScheduleOf(tr.TrainNo)
		if !ok || len(stops) < 2 {
			continue
		}

		fromIdx := -1
		for i, st := range stops {
			if strings.ToUpper(st.StationID) == origin {
				fromIdx = i
				break
			}
		}
		if fromIdx == -1 {
			continue
		}

		toIdx := -1
		for i := fromIdx + 1; i < len(stops); i++ {
			if strings.ToUpper(stops[i].StationID) == destination {
				toIdx = i
				break
			}
		}
		if toIdx == -1 {
			continue
		}

		dep := stops[fromIdx].Departure
		if dep == "" {
			dep = stops[fromIdx].Arrival
		}
		arr := stops[toIdx].Arrival
		if arr == "" {
			arr = stops[toIdx].Departure
		}

		depAbs := timetable.AbsoluteMinutes(dep, stops[fromIdx].DayOffset)
		arrAbs := timetable.AbsoluteMinutes(arr, stops[toIdx].DayOffset)
		durMin := arrAbs - depAbs
		if durMin < 0 {
			durMin = 0
		}

		fromKm := stops[fromIdx].CumDistanceKm
		toKm := stops[toIdx].CumDistanceKm
		if toKm == 0 {
			toKm = fromKm
		}
		distKm := toKm - fromKm
		if distKm < 0 {
			distKm = 0
		}
		if distKm == 0 {
			// Fixture has no usable distances; substitute a plausible run.
			distKm = defaultDistanceKm
		}

		results = append(results, domain.SearchResult{
			TrainNo:       tr.TrainNo,
			TrainName:     tr.TrainName,
			DepartureTime: dep,
			ArrivalTime:   arr,
			Duration:      formatDuration(durMin),
			Price:         EstimatePrice(distKm, tr.Category),
			Category:      tr.Category,
			From:          origin,
			To:            destination,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return timetable.MinutesOf(results[i].DepartureTime) < timetable.MinutesOf(results[j].DepartureTime)
	})

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// EstimatePrice computes the fare estimate for a run of the given distance:
// max(50, km * 0.7 * category multiplier).
func EstimatePrice(km float64, category string) float64 {
	mult := 1.0
	for _, c := range categoryMultipliers {
		if strings.Contains(category, c.substr) {
			mult = c.mult
			break
		}
	}
	return math.Max(minPrice, km*basePricePerKm*mult)
}

func formatDuration(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
