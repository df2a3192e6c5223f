package orders

import (
	"fmt"
	"math/rand"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

// RandomGenerator emits at most one order per tick with a fixed
// probability, destined for a customer location chosen uniformly at
// random. All randomness comes from a single seeded source, so a run is
// fully replayable from its seed.
type RandomGenerator struct {
	rng       *rand.Rand
	prob      float64
	customers []domain.LocationID
	demand    int
	nextID    int
}

func NewRandomGenerator(seed int64, prob float64, customers []domain.LocationID) (*RandomGenerator, error) {
	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("new order generator: probability %v outside [0,1]: %w",
			prob, domain.ErrInvalidConfiguration)
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("new order generator: no customer locations: %w", domain.ErrInvalidConfiguration)
	}

	return &RandomGenerator{
		rng:       rand.New(rand.NewSource(seed)),
		prob:      prob,
		customers: customers,
		demand:    1,
		nextID:    1,
	}, nil
}

// Next returns the orders arriving at the given tick, possibly none.
func (g *RandomGenerator) Next(tick time.Time) []*domain.Order {
	if g.rng.Float64() >= g.prob {
		return nil
	}

	dest := g.customers[g.rng.Intn(len(g.customers))]
	o := &domain.Order{
		OrderID:     g.nextID,
		Destination: dest,
		Demand:      g.demand,
		ArrivedAt:   tick,
	}
	g.nextID++
	return []*domain.Order{o}
}
