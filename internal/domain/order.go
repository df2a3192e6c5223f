package domain

import "time"

// Represents a single delivery order arriving during the simulated day.
// An Order is created by the order generator and never mutated afterwards;
// its outcome lives in the Decision recorded for it.
type Order struct {
	OrderID     int
	Destination LocationID
	Demand      int
	ArrivedAt   time.Time
}
