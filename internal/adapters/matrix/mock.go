package matrix

import (
	"fmt"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

type MockLeg struct {
	From, To domain.LocationID
	Seconds  int64
}

// MockTravelTimes is a test double that serves fixed travel times for an
// explicit set of legs and fails for everything else.
type MockTravelTimes struct {
	m map[[2]domain.LocationID]time.Duration
}

func NewMockTravelTimes(legs []MockLeg) *MockTravelTimes {
	m := make(map[[2]domain.LocationID]time.Duration, len(legs))
	for _, leg := range legs {
		m[[2]domain.LocationID{leg.From, leg.To}] = time.Duration(leg.Seconds) * time.Second
	}
	return &MockTravelTimes{m: m}
}

func (p *MockTravelTimes) TravelTime(from, to domain.LocationID) (time.Duration, error) {
	if from == to {
		return 0, nil
	}
	d, ok := p.m[[2]domain.LocationID{from, to}]
	if !ok {
		return 0, fmt.Errorf("mock travel times: no leg from %d to %d: %w", from, to, domain.ErrUnknownLocation)
	}
	return d, nil
}
