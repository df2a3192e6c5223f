package dto

import "time"

type SimulationRequest struct {
	Seed             *int64     `json:"seed"`
	OrderProbability *float64   `json:"order_probability"`
	Start            *time.Time `json:"start"`
	End              *time.Time `json:"end"`
	TickMinutes      int        `json:"tick_minutes"`
	VehicleCount     int        `json:"vehicle_count"`
	Capacity         int        `json:"capacity"`
	MaxStops         int        `json:"max_stops"`
	MaxRouteMinutes  int        `json:"max_route_minutes"`
	LogRoutes        bool       `json:"log_routes"`
}

type DecisionResponse struct {
	OrderID     int       `json:"order_id"`
	ArrivedAt   time.Time `json:"arrived_at"`
	Decision    string    `json:"decision"`
	VehicleID   *int      `json:"vehicle_id,omitempty"`
	Position    *int      `json:"position,omitempty"`
	CostSeconds *int64    `json:"cost_seconds,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

type SimulationResponse struct {
	RunID            string             `json:"run_id"`
	Inserted         int                `json:"inserted"`
	Rejected         int                `json:"rejected"`
	FleetCostSeconds int64              `json:"fleet_cost_seconds"`
	Decisions        []DecisionResponse `json:"decisions"`
	Routes           []string           `json:"routes"`
}

type ListDecisionsResponse struct {
	RunID     string             `json:"run_id"`
	Decisions []DecisionResponse `json:"decisions"`
}
