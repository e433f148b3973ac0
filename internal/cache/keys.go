package cache

import (
	"fmt"
	"strings"
)

const (
	KeyStations = "stations"
	KeyTrains   = "trains"
)

func KeySearch(origin, destination string) string {
	return fmt.Sprintf("search:%s:%s", strings.ToUpper(origin), strings.ToUpper(destination))
}

func KeySchedule(trainNo string) string {
	return fmt.Sprintf("schedule:%s", trainNo)
}
