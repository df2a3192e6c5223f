package solver

import (
	"errors"
	"sync"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

// Candidate is one feasible (vehicle, position) insertion and its
// marginal travel-time cost.
type Candidate struct {
	VehicleID int
	Position  int
	Cost      time.Duration
}

// Bound on vehicles evaluated concurrently per decision.
const maxParallelVehicles = 4

// InsertionSolver implements greedy cheapest insertion: evaluate every
// gap in every vehicle's route and pick the global minimum marginal cost.
//
// The solver never mutates fleet state; the caller applies the returned
// decision. It is locally optimal only — it does not look ahead to
// future orders and never revisits earlier assignments.
type InsertionSolver struct {
	tt domain.TravelTimes
}

func New(tt domain.TravelTimes) *InsertionSolver {
	return &InsertionSolver{tt: tt}
}

// Solve returns the cheapest feasible insertion for the order, or a
// rejection. Ties are broken by lowest vehicle ID, then lowest position,
// so the result is deterministic for identical fleet state.
func (s *InsertionSolver) Solve(o *domain.Order, fleet *domain.Fleet) domain.Decision {
	// An order for a location outside the matrix can never be routed;
	// reject before touching any route. Both directions are probed since
	// every insertion needs an inbound and an outbound leg.
	if _, err := s.tt.TravelTime(fleet.Depot, o.Destination); errors.Is(err, domain.ErrUnknownLocation) {
		return domain.Rejected(o, domain.ReasonUnreachableLocation)
	}
	if _, err := s.tt.TravelTime(o.Destination, fleet.Depot); errors.Is(err, domain.ErrUnknownLocation) {
		return domain.Rejected(o, domain.ReasonUnreachableLocation)
	}

	// Candidate evaluation is read-only against the fleet, so vehicles
	// are scanned in parallel and reduced to a single winner before the
	// caller mutates anything.
	sem := make(chan struct{}, maxParallelVehicles)
	results := make(chan Candidate, len(fleet.Vehicles))
	var wg sync.WaitGroup

	for _, v := range fleet.Vehicles {
		wg.Add(1)
		go func(v *domain.Vehicle) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if best, ok := s.bestForVehicle(o, v); ok {
				results <- best
			}
		}(v)
	}

	wg.Wait()
	close(results)

	var winner Candidate
	found := false
	for c := range results {
		if !found || less(c, winner) {
			winner = c
			found = true
		}
	}

	if !found {
		return domain.Rejected(o, domain.ReasonNoFeasibleInsertion)
	}
	return domain.Inserted(o, winner.VehicleID, winner.Position, winner.Cost)
}

// bestForVehicle scans every gap of one vehicle's route, including both
// ends, and keeps the cheapest feasible position.
func (s *InsertionSolver) bestForVehicle(o *domain.Order, v *domain.Vehicle) (Candidate, bool) {
	var best Candidate
	found := false

	for pos := 0; pos <= len(v.Route.Stops); pos++ {
		cost, err := v.InsertionCost(s.tt, o, pos)
		if err != nil {
			continue
		}

		// Strict less-than over ascending positions keeps the lowest
		// position on equal cost.
		if !found || cost < best.Cost {
			best = Candidate{VehicleID: v.VehicleID, Position: pos, Cost: cost}
			found = true
		}
	}

	return best, found
}

// less orders candidates by cost, then vehicle ID, then position.
func less(a, b Candidate) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.VehicleID != b.VehicleID {
		return a.VehicleID < b.VehicleID
	}
	return a.Position < b.Position
}
