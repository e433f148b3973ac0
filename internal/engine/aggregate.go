package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/Jitesh050/TrackWise/internal/domain"
	"github.com/Jitesh050/TrackWise/internal/timetable"
)

// RiskLevel is a display heuristic over shared next-stations, not a physical
// collision model.
type RiskLevel string

const (
	RiskHigh RiskLevel = "high"
	RiskLow  RiskLevel = "low"
	RiskSafe RiskLevel = "safe"
)

// GroupedTrain is the compact per-train entry inside a station group.
type GroupedTrain struct {
	TrainNo   string `json:"trainNo"`
	TrainName string `json:"trainName"`
	ETA       string `json:"eta"`
}

// StationGroup collects the trains currently heading for one next-station.
type StationGroup struct {
	Station string         `json:"station"`
	Trains  []GroupedTrain `json:"trains"`
	Risk    RiskLevel      `json:"riskLevel"`
}

// GroupByNextStation buckets snapshots by their next-station display value,
// labeling each bucket: high when three or more trains share the station,
// low at exactly two, safe otherwise. Groups are sorted by station name for
// stable output.
func GroupByNextStation(snapshots []domain.StatusSnapshot) []StationGroup {
	byStation := make(map[string][]GroupedTrain)
	for _, s := range snapshots {
		key := s.NextStation
		if key == "" {
			key = domain.NextStationEnRoute
		}
		eta := s.Arrival
		if eta == "" {
			eta = s.Departure
		}
		if eta == "" {
			eta = "--:--"
		}
		byStation[key] = append(byStation[key], GroupedTrain{
			TrainNo:   s.TrainNo,
			TrainName: s.TrainName,
			ETA:       eta,
		})
	}

	groups := make([]StationGroup, 0, len(byStation))
	for station, trains := range byStation {
		risk := RiskSafe
		switch {
		case len(trains) >= 3:
			risk = RiskHigh
		case len(trains) == 2:
			risk = RiskLow
		}
		groups = append(groups, StationGroup{Station: station, Trains: trains, Risk: risk})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Station < groups[j].Station })
	return groups
}

// ActiveStations counts the distinct non-empty next-stations across the
// snapshot list.
func ActiveStations(snapshots []domain.StatusSnapshot) int {
	seen := make(map[string]struct{})
	for _, s := range snapshots {
		if s.NextStation != "" {
			seen[s.NextStation] = struct{}{}
		}
	}
	return len(seen)
}

// OnTimePercent returns the share of snapshots whose status is On Time,
// rounded to one decimal place. Empty input yields 0.
func OnTimePercent(snapshots []domain.StatusSnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	onTime := 0
	for _, s := range snapshots {
		if strings.EqualFold(string(s.Status), string(domain.StatusOnTime)) {
			onTime++
		}
	}
	return math.Round(float64(onTime)/float64(len(snapshots))*1000) / 10
}

// AverageSpeed computes the mean implied speed across all trains in the
// index: distance between first and last stop divided by scheduled elapsed
// hours. Elapsed hours are floored at 0.1 to skip degenerate schedules.
// The result is rounded to the nearest whole km/h.
func AverageSpeed(idx *timetable.Index) float64 {
	var speeds []float64
	for _, tr := range idx.AllTrains() {
		stops, ok := idx.ScheduleOf(tr.TrainNo)
		if !ok || len(stops) < 2 {
			continue
		}
		first := stops[0]
		last := stops[len(stops)-1]

		km := last.CumDistanceKm - first.CumDistanceKm
		if km < 0 {
			km = 0
		}

		depStr := first.Departure
		if depStr == "" {
			depStr = first.Arrival
		}
		arrStr := last.Arrival
		if arrStr == "" {
			arrStr = last.Departure
		}
		depAbs := timetable.AbsoluteMinutes(depStr, first.DayOffset)
		arrAbs := timetable.AbsoluteMinutes(arrStr, last.DayOffset)

		hours := float64(arrAbs-depAbs) / 60
		if hours < 0.1 {
			hours = 0.1
		}
		speeds = append(speeds, km/hours)
	}
	if len(speeds) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range speeds {
		sum += v
	}
	return math.Round(sum / float64(len(speeds)))
}

// NetworkSummary is the network-wide reduction served by the dashboard.
type NetworkSummary struct {
	TotalTrains      int     `json:"totalTrains"`
	ActiveStations   int     `json:"activeStations"`
	OnTimePercent    float64 `json:"onTimePercent"`
	AvgSpeedKmph     float64 `json:"avgSpeedKmph"`
	HighRiskStations int     `json:"highRiskStations"`
}

// Summarize combines the aggregation helpers into one summary record.
func Summarize(snapshots []domain.StatusSnapshot, idx *timetable.Index) NetworkSummary {
	highRisk := 0
	for _, g := range GroupByNextStation(snapshots) {
		if g.Risk == RiskHigh {
			highRisk++
		}
	}
	return NetworkSummary{
		TotalTrains:      len(snapshots),
		ActiveStations:   ActiveStations(snapshots),
		OnTimePercent:    OnTimePercent(snapshots),
		AvgSpeedKmph:     AverageSpeed(idx),
		HighRiskStations: highRisk,
	}
}
