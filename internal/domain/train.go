package domain

// Status classifies a train at one evaluation instant.
type Status string

const (
	StatusOnTime    Status = "On Time"
	StatusDelayed   Status = "Delayed"
	StatusCancelled Status = "Cancelled"
	StatusBoarding  Status = "Boarding"
	StatusArrived   Status = "Arrived"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusOnTime, StatusDelayed, StatusCancelled, StatusBoarding, StatusArrived:
		return true
	}
	return false
}

// Train is one immutable catalog entry from the timetable fixture.
// Category is free text ("Rajdhani", "Superfast", ...) and doubles as the
// pricing multiplier key.
type Train struct {
	TrainNo      string  `json:"train_no"`
	TrainName    string  `json:"train_name"`
	Category     string  `json:"category"`
	FromStation  string  `json:"from_station"`
	ToStation    string  `json:"to_station"`
	AvgSpeedKmph float64 `json:"avg_speed_kmph,omitempty"`
}

// Stop is one scheduled visit of a train to a station. Arrival is empty at
// the origin and Departure empty at the terminus; both are "HH:MM" 24-hour
// strings otherwise. DayOffset counts calendar days past the journey start,
// disambiguating times past midnight on multi-day runs.
type Stop struct {
	TrainNo       string  `json:"train_no"`
	TrainName     string  `json:"train_name"`
	StationID     string  `json:"station_id"`
	Arrival       string  `json:"arrival"`
	Departure     string  `json:"departure"`
	HaltMin       int     `json:"halt_min"`
	Seq           int     `json:"seq"`
	DayOffset     int     `json:"day_offset"`
	Category      string  `json:"category"`
	CumDistanceKm float64 `json:"cum_distance_km,omitempty"`
}

// Station maps a code to a display name.
type Station struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
