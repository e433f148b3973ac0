package domain

// Next-station markers used in derived snapshots. These are display values,
// not station codes.
const (
	NextStationTerminal  = "Final Destination"
	NextStationEnRoute   = "En Route"
	NextStationCancelled = "Due to Operational Issues"
)

// StatusSnapshot is the derived status of one train at one evaluation
// instant. Snapshots are recomputed wholesale on every derivation; TrainNo
// is the only identity carried across evaluations.
type StatusSnapshot struct {
	TrainNo         string `json:"trainNo"`
	TrainName       string `json:"trainName"`
	From            string `json:"from"`
	To              string `json:"to"`
	Departure       string `json:"departure"`
	Arrival         string `json:"arrival"`
	Status          Status `json:"status"`
	DelayMin        int    `json:"delayMin"`
	NextStation     string `json:"nextStation"`
	NextStationCode string `json:"nextStationCode,omitempty"`
	Platform        int    `json:"platform"`
	Progress        int    `json:"progress"`
}

// Override is a caller-supplied patch applied on top of a derived snapshot.
// Overrides are merged after every re-derivation until cleared.
type Override struct {
	TrainNo     string `json:"trainNo"`
	Status      Status `json:"status"`
	DelayMin    int    `json:"delayMin"`
	NextStation string `json:"nextStation,omitempty"`
}

// SearchResult is one itinerary match for an origin/destination query.
type SearchResult struct {
	TrainNo       string  `json:"trainNumber"`
	TrainName     string  `json:"trainName"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Duration      string  `json:"duration"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	From          string  `json:"from"`
	To            string  `json:"to"`
}

// DeltaType indicates whether a snapshot was updated or removed.
type DeltaType string

const (
	DeltaUpdate DeltaType = "update"
	DeltaRemove DeltaType = "remove"
)

// StatusDelta represents a change in the snapshot store between two
// derivations. Station carries the next-station code used for fan-out.
type StatusDelta struct {
	Type     DeltaType       `json:"type"`
	Snapshot *StatusSnapshot `json:"snapshot,omitempty"`
	TrainNo  string          `json:"trainNo,omitempty"`
	Station  string          `json:"station"`
}
