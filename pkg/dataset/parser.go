package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Jitesh050/TrackWise/internal/domain"
)

// Fixture file names expected inside the data directory.
const (
	TrainsFile    = "trains.json"
	SchedulesFile = "schedules.json"
)

// Parser reads the static timetable fixture files. Structural validation
// (missing keys, malformed times) happens later in timetable.Load; the
// parser only decodes and reports counts.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{
		logger: logger.With("component", "dataset_parser"),
	}
}

// LoadDir reads trains.json and schedules.json from dir.
func (p *Parser) LoadDir(dir string) ([]domain.Train, []domain.Stop, error) {
	start := time.Now()
	p.logger.Info("loading timetable fixtures", "dir", dir)

	trains, err := p.loadTrains(filepath.Join(dir, TrainsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load trains: %w", err)
	}

	stops, err := p.loadStops(filepath.Join(dir, SchedulesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load schedules: %w", err)
	}

	p.logger.Info("fixtures loaded",
		"trains", len(trains),
		"stops", len(stops),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return trains, stops, nil
}

func (p *Parser) loadTrains(path string) ([]domain.Train, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.ParseTrains(f)
}

func (p *Parser) loadStops(path string) ([]domain.Stop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.ParseStops(f)
}

// ParseTrains decodes a JSON array of train records.
func (p *Parser) ParseTrains(r io.Reader) ([]domain.Train, error) {
	var trains []domain.Train
	dec := json.NewDecoder(r)
	if err := dec.Decode(&trains); err != nil {
		return nil, fmt.Errorf("decode trains: %w", err)
	}
	p.logger.Debug("parsed train records", "count", len(trains))
	return trains, nil
}

// ParseStops decodes a JSON array of stop records.
func (p *Parser) ParseStops(r io.Reader) ([]domain.Stop, error) {
	var stops []domain.Stop
	dec := json.NewDecoder(r)
	if err := dec.Decode(&stops); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	p.logger.Debug("parsed stop records", "count", len(stops))
	return stops, nil
}
