package domain

import (
	"fmt"
	"time"
)

// Per-vehicle limits from the fleet configuration.
type VehicleConfig struct {
	Capacity    int
	MaxStops    int
	MaxDuration time.Duration
}

func (c VehicleConfig) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d: %w", c.Capacity, ErrInvalidConfiguration)
	}
	if c.MaxStops <= 0 {
		return fmt.Errorf("max stops must be positive, got %d: %w", c.MaxStops, ErrInvalidConfiguration)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max route duration must be positive, got %s: %w", c.MaxDuration, ErrInvalidConfiguration)
	}
	return nil
}

// Delivery vehicle aggregate owning exactly one Route.
// Vehicles are created once at simulation start and never destroyed.
type Vehicle struct {
	VehicleID   int
	Capacity    int
	MaxStops    int
	MaxDuration time.Duration
	Route       *Route
}

func NewVehicle(id int, cfg VehicleConfig, depot LocationID) (*Vehicle, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new vehicle %d: %w", id, err)
	}
	return &Vehicle{
		VehicleID:   id,
		Capacity:    cfg.Capacity,
		MaxStops:    cfg.MaxStops,
		MaxDuration: cfg.MaxDuration,
		Route:       NewRoute(id, depot),
	}, nil
}

func (v *Vehicle) Constraints() Constraints {
	return Constraints{Capacity: v.Capacity, MaxStops: v.MaxStops, MaxDuration: v.MaxDuration}
}

// InsertionCost evaluates inserting the order at pos in this vehicle's
// route under the vehicle's own constraints. Read-only.
func (v *Vehicle) InsertionCost(tt TravelTimes, o *Order, pos int) (time.Duration, error) {
	return v.Route.InsertionCost(tt, o, pos, v.Constraints())
}
