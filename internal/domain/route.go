package domain

import (
	"fmt"
	"strings"
	"time"
)

// TravelTimes supplies travel durations between locations known to the
// precomputed matrix. Implementations must be deterministic and must
// return ErrUnknownLocation for any location outside the registry.
type TravelTimes interface {
	TravelTime(from, to LocationID) (time.Duration, error)
}

// Represents a single stop in a vehicle's route.
// ArriveAt and LoadAfter are cumulative fields derived from the stops
// before it; they are recomputed on every committed insertion.
type Stop struct {
	OrderID   int
	Location  LocationID
	Demand    int
	ArriveAt  time.Duration
	LoadAfter int
}

// Constraints bound what a vehicle's route may become.
type Constraints struct {
	Capacity    int
	MaxStops    int
	MaxDuration time.Duration
}

// Ordered sequence of stops for one vehicle, starting and ending
// implicitly at the depot. A Route is mutated only by ApplyInsertion;
// stops are never removed.
type Route struct {
	VehicleID int
	Depot     LocationID
	Stops     []Stop

	// Derived aggregates, maintained by recompute.
	Duration time.Duration
	Load     int
}

func NewRoute(vehicleID int, depot LocationID) *Route {
	return &Route{VehicleID: vehicleID, Depot: depot}
}

// InsertionCost computes the marginal travel-time cost of inserting the
// order's destination at pos (between the stops currently at pos-1 and
// pos, with the depot as the boundary at both ends).
//
// The result is travelTime(prev, new) + travelTime(new, next) -
// travelTime(prev, next). ErrInfeasibleInsertion is returned when the
// resulting route would exceed capacity, the stop limit, or the maximum
// route duration. The route is never mutated by this call.
func (r *Route) InsertionCost(tt TravelTimes, o *Order, pos int, c Constraints) (time.Duration, error) {
	if pos < 0 || pos > len(r.Stops) {
		return 0, fmt.Errorf("insertion cost: position %d out of range [0,%d]", pos, len(r.Stops))
	}

	if len(r.Stops)+1 > c.MaxStops {
		return 0, fmt.Errorf("insertion cost: stop limit %d reached: %w", c.MaxStops, ErrInfeasibleInsertion)
	}
	if r.Load+o.Demand > c.Capacity {
		return 0, fmt.Errorf("insertion cost: departure load %d exceeds capacity %d: %w",
			r.Load+o.Demand, c.Capacity, ErrInfeasibleInsertion)
	}

	prev := r.Depot
	if pos > 0 {
		prev = r.Stops[pos-1].Location
	}
	next := r.Depot
	if pos < len(r.Stops) {
		next = r.Stops[pos].Location
	}

	in, err := tt.TravelTime(prev, o.Destination)
	if err != nil {
		return 0, fmt.Errorf("insertion cost: leg to new stop: %w", err)
	}
	out, err := tt.TravelTime(o.Destination, next)
	if err != nil {
		return 0, fmt.Errorf("insertion cost: leg from new stop: %w", err)
	}
	bridged, err := tt.TravelTime(prev, next)
	if err != nil {
		return 0, fmt.Errorf("insertion cost: replaced leg: %w", err)
	}

	marginal := in + out - bridged
	if r.Duration+marginal > c.MaxDuration {
		return 0, fmt.Errorf("insertion cost: route duration %s exceeds limit %s: %w",
			r.Duration+marginal, c.MaxDuration, ErrInfeasibleInsertion)
	}

	return marginal, nil
}

// ApplyInsertion commits the order's stop at pos and re-derives the
// cumulative fields of every stop from pos onward. Callers must have
// obtained a successful InsertionCost for the same (order, pos) first.
func (r *Route) ApplyInsertion(tt TravelTimes, o *Order, pos int) error {
	if pos < 0 || pos > len(r.Stops) {
		return fmt.Errorf("apply insertion: position %d out of range [0,%d]", pos, len(r.Stops))
	}

	stop := Stop{OrderID: o.OrderID, Location: o.Destination, Demand: o.Demand}
	r.Stops = append(r.Stops, Stop{})
	copy(r.Stops[pos+1:], r.Stops[pos:])
	r.Stops[pos] = stop

	if err := r.recompute(tt); err != nil {
		return fmt.Errorf("apply insertion: %w", err)
	}
	return nil
}

// recompute re-derives cumulative arrival times, load-after-stop values,
// and the depot-to-depot duration for the whole route.
func (r *Route) recompute(tt TravelTimes) error {
	total := 0
	for _, s := range r.Stops {
		total += s.Demand
	}
	r.Load = total

	if len(r.Stops) == 0 {
		r.Duration = 0
		return nil
	}

	var elapsed time.Duration
	current := r.Depot
	remaining := total
	for i := range r.Stops {
		leg, err := tt.TravelTime(current, r.Stops[i].Location)
		if err != nil {
			return fmt.Errorf("recompute route for vehicle %d: %w", r.VehicleID, err)
		}
		elapsed += leg
		remaining -= r.Stops[i].Demand
		r.Stops[i].ArriveAt = elapsed
		r.Stops[i].LoadAfter = remaining
		current = r.Stops[i].Location
	}

	back, err := tt.TravelTime(current, r.Depot)
	if err != nil {
		return fmt.Errorf("recompute route for vehicle %d: return leg: %w", r.VehicleID, err)
	}
	r.Duration = elapsed + back
	return nil
}

// Summary renders the route as "Depot -> A -> B -> Depot" using the
// supplied name lookup. Used by the orchestrator's fleet status lines.
func (r *Route) Summary(name func(LocationID) string) string {
	if len(r.Stops) == 0 {
		return "Depot (idle)"
	}

	parts := make([]string, 0, len(r.Stops)+2)
	parts = append(parts, "Depot")
	for _, s := range r.Stops {
		parts = append(parts, name(s.Location))
	}
	parts = append(parts, "Depot")
	return strings.Join(parts, " -> ")
}
