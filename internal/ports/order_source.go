package ports

import (
	"time"

	"fleet-dispatch-sim/internal/domain"
)

// Port: the order-arrival process driving the simulation.
// Next is called once per tick and may yield zero or more orders, in
// arrival order. Implementations backed by a seeded random source must
// reproduce the same sequence for the same seed.
type OrderSource interface {
	Next(tick time.Time) []*domain.Order
}
