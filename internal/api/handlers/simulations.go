package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"fleet-dispatch-sim/internal/adapters/matrix"
	"fleet-dispatch-sim/internal/adapters/orders"
	"fleet-dispatch-sim/internal/api/dto"
	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/platform/obs"
	"fleet-dispatch-sim/internal/ports"
	"fleet-dispatch-sim/internal/sim"

	"github.com/google/uuid"
)

type SimulationHandler struct {
	Oracle *matrix.Oracle
	Store  ports.DecisionStore
}

// Run executes one full simulated day against the loaded matrix and
// returns the decision log. Each call gets a fresh fleet and a fresh
// seeded generator, so identical requests produce identical responses.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	seed := int64(1)
	if req.Seed != nil {
		seed = *req.Seed
	}

	prob := 0.4
	if req.OrderProbability != nil {
		prob = *req.OrderProbability
	}
	if prob < 0 || prob > 1 {
		writeError(w, r, http.StatusBadRequest, "order_probability must be between 0 and 1")
		return
	}

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	if req.Start != nil {
		start = *req.Start
	}
	end := start.Add(8 * time.Hour)
	if req.End != nil {
		end = *req.End
	}
	if !end.After(start) {
		writeError(w, r, http.StatusBadRequest, "end must be after start")
		return
	}

	tickMinutes := req.TickMinutes
	if tickMinutes == 0 {
		tickMinutes = 5
	}
	if tickMinutes < 1 || tickMinutes > 120 {
		writeError(w, r, http.StatusBadRequest, "tick_minutes must be between 1 and 120")
		return
	}

	vehicleCount := req.VehicleCount
	if vehicleCount == 0 {
		vehicleCount = 3
	}
	if vehicleCount < 1 || vehicleCount > 20 {
		writeError(w, r, http.StatusBadRequest, "vehicle_count must be between 1 and 20")
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 16
	}
	maxStops := req.MaxStops
	if maxStops == 0 {
		maxStops = 10
	}
	maxRouteMinutes := req.MaxRouteMinutes
	if maxRouteMinutes == 0 {
		maxRouteMinutes = 170
	}
	if capacity < 1 || maxStops < 1 || maxRouteMinutes < 1 {
		writeError(w, r, http.StatusBadRequest, "capacity, max_stops and max_route_minutes must be positive")
		return
	}

	cfgs := make([]domain.VehicleConfig, vehicleCount)
	for i := range cfgs {
		cfgs[i] = domain.VehicleConfig{
			Capacity:    capacity,
			MaxStops:    maxStops,
			MaxDuration: time.Duration(maxRouteMinutes) * time.Minute,
		}
	}

	fleet, err := domain.NewFleet(cfgs, domain.DepotID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	source, err := orders.NewRandomGenerator(seed, prob, h.Oracle.Customers())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	runID := uuid.NewString()
	orch, err := sim.New(sim.Config{
		RunID:     runID,
		Start:     start,
		End:       end,
		Tick:      time.Duration(tickMinutes) * time.Minute,
		LogRoutes: req.LogRoutes,
	}, fleet, h.Oracle, source, h.Store, h.Oracle.Name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := obs.WithRunID(r.Context(), runID)
	report, err := orch.Run(ctx)
	if err != nil {
		log.Printf("simulation run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SimulationResponse{
		RunID:            report.RunID,
		Inserted:         report.Inserted,
		Rejected:         report.Rejected,
		FleetCostSeconds: int64(report.FleetCost / time.Second),
		Decisions:        make([]dto.DecisionResponse, 0, len(report.Decisions)),
		Routes:           report.Routes,
	}
	for _, d := range report.Decisions {
		res.Decisions = append(res.Decisions, toDecisionResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toDecisionResponse(d domain.Decision) dto.DecisionResponse {
	out := dto.DecisionResponse{
		OrderID:   d.OrderID,
		ArrivedAt: d.ArrivedAt,
	}
	if d.Inserted {
		vehicleID, position := d.VehicleID, d.Position
		costSeconds := int64(d.Cost / time.Second)
		out.Decision = "insert"
		out.VehicleID = &vehicleID
		out.Position = &position
		out.CostSeconds = &costSeconds
	} else {
		out.Decision = "reject"
		out.Reason = string(d.Reason)
	}
	return out
}
