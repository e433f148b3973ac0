package engine

import "github.com/Jitesh050/TrackWise/internal/domain"

// ApplyOverrides merges caller-supplied status patches over a derived
// snapshot list. The merge is a pure reducer: the input slice is not
// mutated, overrides apply in order, and commands for unknown trains are
// ignored. Callers hold their override list and reapply it after every
// re-derivation.
//
// Rules: a Delayed override keeps the caller's delay verbatim; any other
// status resets delay to zero. A Cancelled override forces the fixed
// operational-issue next-station text regardless of caller input; otherwise
// next-station is the caller value, then the snapshot's previous value, then
// the en-route marker.
func ApplyOverrides(snapshots []domain.StatusSnapshot, cmds []domain.Override) []domain.StatusSnapshot {
	if len(cmds) == 0 {
		return snapshots
	}

	result := make([]domain.StatusSnapshot, len(snapshots))
	copy(result, snapshots)

	pos := make(map[string]int, len(result))
	for i, s := range result {
		pos[s.TrainNo] = i
	}

	for _, cmd := range cmds {
		i, ok := pos[cmd.TrainNo]
		if !ok {
			continue
		}
		s := result[i]

		s.Status = cmd.Status
		if cmd.Status == domain.StatusDelayed {
			s.DelayMin = cmd.DelayMin
		} else {
			s.DelayMin = 0
		}

		switch {
		case cmd.Status == domain.StatusCancelled:
			s.NextStation = domain.NextStationCancelled
			s.NextStationCode = ""
		case cmd.NextStation != "":
			s.NextStation = cmd.NextStation
		case s.NextStation != "":
			// keep the derived value
		default:
			s.NextStation = domain.NextStationEnRoute
		}

		result[i] = s
	}
	return result
}
