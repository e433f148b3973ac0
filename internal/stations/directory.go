package stations

import "github.com/Jitesh050/TrackWise/internal/domain"

// displayNames covers the station codes present in the simulation fixtures.
// The table is read-only after init; codes not listed here fall back to the
// code itself.
var displayNames = map[string]string{
	"TVC":    "Thiruvananthapuram Central",
	"ERS":    "Ernakulam Junction",
	"CBE":    "Coimbatore Junction",
	"MAS":    "Chennai Central",
	"BZA":    "Vijayawada Junction",
	"SC":     "Secunderabad Junction",
	"KCG":    "Hyderabad Deccan",
	"SBC":    "Bangalore City",
	"UBL":    "Hubballi Junction",
	"PUNE":   "Pune Junction",
	"BCT":    "Mumbai Central",
	"NGP":    "Nagpur Junction",
	"BPL":    "Bhopal Junction",
	"JBP":    "Jabalpur Junction",
	"RAIPUR": "Raipur Junction",
	"HWH":    "Howrah Junction",
	"KOAA":   "Kolkata",
	"PNBE":   "Patna Junction",
	"GKP":    "Gorakhpur Junction",
	"LKO":    "Lucknow Junction",
	"CNB":    "Kanpur Central",
	"NDLS":   "New Delhi",
	"AGRA":   "Agra Cantt",
	"JP":     "Jaipur Junction",
	"ADI":    "Ahmedabad Junction",
	"CDG":    "Chandigarh",
}

// Name returns the display name for a station code, or the code itself when
// the code is not in the directory. This lookup cannot fail.
func Name(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}

// Resolve maps a list of codes to Station records, applying the fallback
// rule per code.
func Resolve(codes []string) []domain.Station {
	result := make([]domain.Station, 0, len(codes))
	for _, c := range codes {
		result = append(result, domain.Station{Code: c, Name: Name(c)})
	}
	return result
}
