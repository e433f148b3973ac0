package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseHHMM converts an "HH:MM" 24-hour string to minutes since midnight.
func ParseHHMM(t string) (int, error) {
	h, m, ok := strings.Cut(t, ":")
	if !ok {
		return 0, fmt.Errorf("malformed time %q: want HH:MM", t)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("malformed time %q: bad hour", t)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("malformed time %q: bad minute", t)
	}
	return hours*60 + mins, nil
}

// MinutesOf is ParseHHMM for already-validated fixture times. Empty or
// malformed strings yield 0, matching the fixture convention of "" at the
// origin arrival and terminal departure.
func MinutesOf(t string) int {
	if t == "" {
		return 0
	}
	m, err := ParseHHMM(t)
	if err != nil {
		return 0
	}
	return m
}

// AbsoluteMinutes places a time-of-day on the journey timeline:
// dayOffset*1440 + minutes since midnight.
func AbsoluteMinutes(t string, dayOffset int) int {
	return dayOffset*minutesPerDay + MinutesOf(t)
}
