package timetable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jitesh050/TrackWise/internal/domain"
)

// LoadError describes a structurally invalid fixture row. It is fatal to the
// load step; malformed rows are never silently dropped since they would
// corrupt downstream ordering.
type LoadError struct {
	Kind string // "train" or "stop"
	Row  int
	Msg  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("timetable: invalid %s row %d: %s", e.Kind, e.Row, e.Msg)
}

// Index is the immutable per-train stop index built once at load. All
// accessors copy on read; the index itself is never mutated after Load
// returns, so it is safe for concurrent use without locking.
type Index struct {
	trains       []domain.Train
	trainsByNo   map[string]domain.Train
	stopsByTrain map[string][]domain.Stop
	stationCodes []string
}

// Load groups stops by train number and sorts each group by
// (day_offset, seq) ascending. Input order of trains is preserved.
func Load(trains []domain.Train, stops []domain.Stop) (*Index, error) {
	idx := &Index{
		trains:       make([]domain.Train, len(trains)),
		trainsByNo:   make(map[string]domain.Train, len(trains)),
		stopsByTrain: make(map[string][]domain.Stop),
	}
	copy(idx.trains, trains)

	for i, tr := range trains {
		if tr.TrainNo == "" {
			return nil, &LoadError{Kind: "train", Row: i, Msg: "missing train_no"}
		}
		idx.trainsByNo[tr.TrainNo] = tr
	}

	codes := make(map[string]struct{})
	for i, st := range stops {
		if st.TrainNo == "" {
			return nil, &LoadError{Kind: "stop", Row: i, Msg: "missing train_no"}
		}
		if st.StationID == "" {
			return nil, &LoadError{Kind: "stop", Row: i, Msg: "missing station_id"}
		}
		if st.Arrival != "" {
			if _, err := ParseHHMM(st.Arrival); err != nil {
				return nil, &LoadError{Kind: "stop", Row: i, Msg: err.Error()}
			}
		}
		if st.Departure != "" {
			if _, err := ParseHHMM(st.Departure); err != nil {
				return nil, &LoadError{Kind: "stop", Row: i, Msg: err.Error()}
			}
		}
		idx.stopsByTrain[st.TrainNo] = append(idx.stopsByTrain[st.TrainNo], st)
		codes[strings.ToUpper(st.StationID)] = struct{}{}
	}

	for no := range idx.stopsByTrain {
		group := idx.stopsByTrain[no]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].DayOffset != group[j].DayOffset {
				return group[i].DayOffset < group[j].DayOffset
			}
			return group[i].Seq < group[j].Seq
		})
	}

	idx.stationCodes = make([]string, 0, len(codes))
	for c := range codes {
		idx.stationCodes = append(idx.stationCodes, c)
	}
	sort.Strings(idx.stationCodes)

	return idx, nil
}

// AllTrains returns the catalog in input order.
func (idx *Index) AllTrains() []domain.Train {
	result := make([]domain.Train, len(idx.trains))
	copy(result, idx.trains)
	return result
}

// TrainByNo looks up one catalog entry.
func (idx *Index) TrainByNo(trainNo string) (domain.Train, bool) {
	tr, ok := idx.trainsByNo[trainNo]
	return tr, ok
}

// ScheduleOf returns a train's ordered stop list. The second return is false
// for unknown trains; absence is a valid, non-error outcome.
func (idx *Index) ScheduleOf(trainNo string) ([]domain.Stop, bool) {
	group, ok := idx.stopsByTrain[trainNo]
	if !ok {
		return nil, false
	}
	result := make([]domain.Stop, len(group))
	copy(result, group)
	return result, true
}

// StationCodes returns every station code seen in the stop records,
// uppercase-normalized and sorted. Computed once at load.
func (idx *Index) StationCodes() []string {
	result := make([]string, len(idx.stationCodes))
	copy(result, idx.stationCodes)
	return result
}

// TrainCount reports the number of catalog entries.
func (idx *Index) TrainCount() int {
	return len(idx.trains)
}

// StopCount reports the total number of stop records in the index.
func (idx *Index) StopCount() int {
	total := 0
	for _, group := range idx.stopsByTrain {
		total += len(group)
	}
	return total
}
