package domain

import (
	"errors"
	"testing"
	"time"
)

func validConfig() VehicleConfig {
	return VehicleConfig{Capacity: 5, MaxStops: 10, MaxDuration: 2 * time.Hour}
}

func TestNewFleetAssignsSequentialIDs(t *testing.T) {
	f, err := NewFleet([]VehicleConfig{validConfig(), validConfig(), validConfig()}, DepotID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Vehicles) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(f.Vehicles))
	}
	for i, v := range f.Vehicles {
		if v.VehicleID != i {
			t.Errorf("vehicle %d has ID %d", i, v.VehicleID)
		}
		if v.Route == nil || len(v.Route.Stops) != 0 {
			t.Errorf("vehicle %d should start with an empty route", i)
		}
	}
}

func TestNewFleetRejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		cfgs []VehicleConfig
	}{
		{"no vehicles", nil},
		{"zero capacity", []VehicleConfig{{Capacity: 0, MaxStops: 5, MaxDuration: time.Hour}}},
		{"negative capacity", []VehicleConfig{{Capacity: -1, MaxStops: 5, MaxDuration: time.Hour}}},
		{"zero max stops", []VehicleConfig{{Capacity: 5, MaxStops: 0, MaxDuration: time.Hour}}},
		{"zero duration", []VehicleConfig{{Capacity: 5, MaxStops: 5, MaxDuration: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFleet(tc.cfgs, DepotID)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestFleetVehicleLookup(t *testing.T) {
	f, err := NewFleet([]VehicleConfig{validConfig(), validConfig()}, DepotID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := f.Vehicle(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.VehicleID != 1 {
		t.Fatalf("got vehicle %d, want 1", v.VehicleID)
	}

	if _, err := f.Vehicle(2); err == nil {
		t.Fatal("expected error for unknown vehicle id")
	}
}
