package domain

import "fmt"

// Fleet owns every vehicle in the simulation and is the single source of
// truth for route state. Routes are mutated only through the orchestrator's
// apply step; heuristic evaluation treats the fleet as read-only.
type Fleet struct {
	Vehicles []*Vehicle
	Depot    LocationID
}

// NewFleet builds the fleet from per-vehicle configurations. Vehicle IDs
// are assigned 0..n-1 in configuration order, which also fixes the
// solver's tie-break ordering.
func NewFleet(cfgs []VehicleConfig, depot LocationID) (*Fleet, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("new fleet: at least one vehicle is required: %w", ErrInvalidConfiguration)
	}

	vehicles := make([]*Vehicle, 0, len(cfgs))
	for i, cfg := range cfgs {
		v, err := NewVehicle(i, cfg, depot)
		if err != nil {
			return nil, fmt.Errorf("new fleet: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return &Fleet{Vehicles: vehicles, Depot: depot}, nil
}

// Vehicle returns the vehicle with the given ID.
func (f *Fleet) Vehicle(id int) (*Vehicle, error) {
	if id < 0 || id >= len(f.Vehicles) {
		return nil, fmt.Errorf("fleet: no vehicle with id %d", id)
	}
	return f.Vehicles[id], nil
}

// TotalStops counts committed stops across all routes.
func (f *Fleet) TotalStops() int {
	n := 0
	for _, v := range f.Vehicles {
		n += len(v.Route.Stops)
	}
	return n
}
