package matrix

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"fleet-dispatch-sim/internal/domain"
)

// File layout of a precomputed matrix produced by the offline builder.
// Locations are listed depot first; travel_seconds[i][j] is the travel
// time from location i to location j.
type matrixFile struct {
	Locations []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	} `json:"locations"`
	TravelSeconds [][]int64 `json:"travel_seconds"`
}

// Load reads a precomputed travel-time matrix from disk and validates it.
// A missing or malformed file is fatal: the simulation must not start
// without a complete matrix.
func Load(path string) (*Oracle, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load matrix: read %q: %w", path, err)
	}

	var file matrixFile
	if err := json.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("load matrix: parse %q: %w", path, err)
	}

	locations := make([]domain.Location, 0, len(file.Locations))
	for i, loc := range file.Locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			return nil, fmt.Errorf("load matrix: location %d has empty name: %w", i, domain.ErrInvalidConfiguration)
		}
		locations = append(locations, domain.Location{
			ID:   domain.LocationID(i),
			Name: name,
			Lat:  loc.Lat,
			Lon:  loc.Lon,
		})
	}

	oracle, err := NewOracle(locations, file.TravelSeconds)
	if err != nil {
		return nil, fmt.Errorf("load matrix: %q: %w", path, err)
	}
	return oracle, nil
}
