package matrix

import (
	"fmt"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

// Oracle is the fully materialized travel-time lookup backing a
// simulation run. It is loaded once before the decision loop starts and
// is read-only afterwards, so lookups never block on I/O.
type Oracle struct {
	locations []domain.Location
	seconds   [][]int64
}

// NewOracle builds an oracle from a location registry and a square
// matrix of travel times in seconds. Row/column order must match the
// registry order, with the depot at index 0.
func NewOracle(locations []domain.Location, seconds [][]int64) (*Oracle, error) {
	if len(locations) < 2 {
		return nil, fmt.Errorf("new oracle: need a depot and at least one customer, got %d locations: %w",
			len(locations), domain.ErrInvalidConfiguration)
	}
	if len(seconds) != len(locations) {
		return nil, fmt.Errorf("new oracle: matrix has %d rows for %d locations: %w",
			len(seconds), len(locations), domain.ErrInvalidConfiguration)
	}
	for i, row := range seconds {
		if len(row) != len(locations) {
			return nil, fmt.Errorf("new oracle: row %d has %d columns, want %d: %w",
				i, len(row), len(locations), domain.ErrInvalidConfiguration)
		}
		for j, s := range row {
			if s < 0 {
				return nil, fmt.Errorf("new oracle: negative travel time at [%d][%d]: %w",
					i, j, domain.ErrInvalidConfiguration)
			}
		}
	}

	return &Oracle{locations: locations, seconds: seconds}, nil
}

// TravelTime returns the precomputed travel time between two locations.
func (o *Oracle) TravelTime(from, to domain.LocationID) (time.Duration, error) {
	if int(from) < 0 || int(from) >= len(o.locations) {
		return 0, fmt.Errorf("travel time: origin %d: %w", from, domain.ErrUnknownLocation)
	}
	if int(to) < 0 || int(to) >= len(o.locations) {
		return 0, fmt.Errorf("travel time: destination %d: %w", to, domain.ErrUnknownLocation)
	}
	return time.Duration(o.seconds[from][to]) * time.Second, nil
}

// Locations returns the full registry, depot first.
func (o *Oracle) Locations() []domain.Location {
	return o.locations
}

// Customers returns every location except the depot.
func (o *Oracle) Customers() []domain.LocationID {
	ids := make([]domain.LocationID, 0, len(o.locations)-1)
	for _, loc := range o.locations {
		if loc.ID != domain.DepotID {
			ids = append(ids, loc.ID)
		}
	}
	return ids
}

// Name returns a display name for a location, or its index if unknown.
func (o *Oracle) Name(id domain.LocationID) string {
	if int(id) < 0 || int(id) >= len(o.locations) {
		return fmt.Sprintf("#%d", id)
	}
	return o.locations[id].Name
}
