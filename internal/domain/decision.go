package domain

import "time"

// RejectReason classifies why an order could not be served.
type RejectReason string

const (
	// ReasonNoFeasibleInsertion: every (vehicle, position) pair violates
	// capacity, stop-count, or duration constraints.
	ReasonNoFeasibleInsertion RejectReason = "no_feasible_insertion"

	// ReasonUnreachableLocation: the order's destination is absent from the
	// travel-time matrix.
	ReasonUnreachableLocation RejectReason = "unreachable_location"
)

// Decision is the recorded outcome for one order: either the winning
// (vehicle, position) insertion with its marginal cost, or a rejection.
// The ordered sequence of decisions is the simulation's observable output.
type Decision struct {
	OrderID   int
	ArrivedAt time.Time
	Inserted  bool

	// Set when Inserted.
	VehicleID int
	Position  int
	Cost      time.Duration

	// Set when rejected.
	Reason RejectReason
}

func Inserted(o *Order, vehicleID, pos int, cost time.Duration) Decision {
	return Decision{
		OrderID:   o.OrderID,
		ArrivedAt: o.ArrivedAt,
		Inserted:  true,
		VehicleID: vehicleID,
		Position:  pos,
		Cost:      cost,
	}
}

func Rejected(o *Order, reason RejectReason) Decision {
	return Decision{
		OrderID:   o.OrderID,
		ArrivedAt: o.ArrivedAt,
		Reason:    reason,
	}
}
