package domain

import "errors"

var (
	// ErrUnknownLocation reports a location absent from the travel-time matrix.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrInfeasibleInsertion reports an insertion that would violate
	// capacity, stop-count, or route-duration constraints.
	ErrInfeasibleInsertion = errors.New("infeasible insertion")

	// ErrInvalidConfiguration reports an unusable fleet or simulation setup.
	// It is fatal at startup; the simulation never begins.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrClockExhausted reports an order handed to the orchestrator after
	// the simulated day ended. Correct sequencing never triggers it.
	ErrClockExhausted = errors.New("simulation clock exhausted")
)
