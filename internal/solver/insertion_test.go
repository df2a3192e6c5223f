package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-dispatch-sim/internal/adapters/matrix"
	"fleet-dispatch-sim/internal/domain"
)

// Depot, A, B, C with an asymmetric B->A leg so that insertion position
// is never a wash.
func fixtureOracle(t *testing.T) *matrix.Oracle {
	t.Helper()

	locations := []domain.Location{
		{ID: 0, Name: "Depot"},
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	seconds := [][]int64{
		{0, 600, 1200, 900},
		{600, 0, 480, 420},
		{1200, 900, 0, 540},
		{900, 420, 540, 0},
	}

	oracle, err := matrix.NewOracle(locations, seconds)
	require.NoError(t, err)
	return oracle
}

func fixtureFleet(t *testing.T, vehicles int, cfg domain.VehicleConfig) *domain.Fleet {
	t.Helper()

	cfgs := make([]domain.VehicleConfig, vehicles)
	for i := range cfgs {
		cfgs[i] = cfg
	}
	fleet, err := domain.NewFleet(cfgs, domain.DepotID)
	require.NoError(t, err)
	return fleet
}

func roomy() domain.VehicleConfig {
	return domain.VehicleConfig{Capacity: 10, MaxStops: 10, MaxDuration: 8 * time.Hour}
}

func newOrder(id int, dest domain.LocationID) *domain.Order {
	return &domain.Order{OrderID: id, Destination: dest, Demand: 1}
}

func TestSolvePicksCheapestVehicleAndPosition(t *testing.T) {
	oracle := fixtureOracle(t)
	fleet := fixtureFleet(t, 2, roomy())

	// Vehicle 0 already serves A.
	require.NoError(t, fleet.Vehicles[0].Route.ApplyInsertion(oracle, newOrder(1, 1), 0))

	d := New(oracle).Solve(newOrder(2, 2), fleet)

	// Appending B after A costs 480+1200-600; every alternative is worse.
	assert.True(t, d.Inserted)
	assert.Equal(t, 0, d.VehicleID)
	assert.Equal(t, 1, d.Position)
	assert.Equal(t, 1080*time.Second, d.Cost)
}

func TestSolveTieBreakPrefersLowestVehicleThenPosition(t *testing.T) {
	oracle := fixtureOracle(t)
	fleet := fixtureFleet(t, 3, roomy())

	// Every empty vehicle quotes the same round-trip cost.
	d := New(oracle).Solve(newOrder(1, 1), fleet)

	assert.True(t, d.Inserted)
	assert.Equal(t, 0, d.VehicleID)
	assert.Equal(t, 0, d.Position)
	assert.Equal(t, 1200*time.Second, d.Cost)
}

func TestSolveIsDeterministic(t *testing.T) {
	oracle := fixtureOracle(t)

	build := func() *domain.Fleet {
		fleet := fixtureFleet(t, 2, roomy())
		require.NoError(t, fleet.Vehicles[0].Route.ApplyInsertion(oracle, newOrder(1, 3), 0))
		require.NoError(t, fleet.Vehicles[1].Route.ApplyInsertion(oracle, newOrder(2, 1), 0))
		return fleet
	}

	s := New(oracle)
	first := s.Solve(newOrder(3, 2), build())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, s.Solve(newOrder(3, 2), build()))
	}
}

func TestSolveReturnsGlobalMinimum(t *testing.T) {
	oracle := fixtureOracle(t)
	fleet := fixtureFleet(t, 2, roomy())
	require.NoError(t, fleet.Vehicles[0].Route.ApplyInsertion(oracle, newOrder(1, 1), 0))
	require.NoError(t, fleet.Vehicles[1].Route.ApplyInsertion(oracle, newOrder(2, 2), 0))

	o := newOrder(3, 3)
	d := New(oracle).Solve(o, fleet)
	require.True(t, d.Inserted)

	// Exhaustive cross-check: the winner is no worse than any feasible pair.
	for _, v := range fleet.Vehicles {
		for pos := 0; pos <= len(v.Route.Stops); pos++ {
			cost, err := v.InsertionCost(oracle, o, pos)
			if err != nil {
				continue
			}
			assert.LessOrEqual(t, d.Cost, cost,
				"winner cost beaten by vehicle %d position %d", v.VehicleID, pos)
		}
	}
}

func TestSolveRejectsUnreachableDestination(t *testing.T) {
	oracle := fixtureOracle(t)
	fleet := fixtureFleet(t, 2, roomy())

	d := New(oracle).Solve(newOrder(1, 99), fleet)

	assert.False(t, d.Inserted)
	assert.Equal(t, domain.ReasonUnreachableLocation, d.Reason)
	assert.Equal(t, 0, fleet.TotalStops())
}

func TestSolveRejectsDestinationWithMissingReturnLeg(t *testing.T) {
	// Outbound leg exists but the return leg does not; the order still
	// counts as unreachable.
	tt := matrix.NewMockTravelTimes([]matrix.MockLeg{
		{From: 0, To: 1, Seconds: 600},
	})
	fleet := fixtureFleet(t, 1, roomy())

	d := New(tt).Solve(newOrder(1, 1), fleet)

	assert.False(t, d.Inserted)
	assert.Equal(t, domain.ReasonUnreachableLocation, d.Reason)
}

func TestSolveRejectsWhenNothingFeasible(t *testing.T) {
	oracle := fixtureOracle(t)

	cfg := roomy()
	cfg.MaxDuration = 10 * time.Minute // below any round trip
	fleet := fixtureFleet(t, 3, cfg)

	o := newOrder(1, 1)
	d := New(oracle).Solve(o, fleet)

	assert.False(t, d.Inserted)
	assert.Equal(t, domain.ReasonNoFeasibleInsertion, d.Reason)

	// Rejection completeness: brute force confirms no pair satisfies the
	// constraints.
	for _, v := range fleet.Vehicles {
		for pos := 0; pos <= len(v.Route.Stops); pos++ {
			_, err := v.InsertionCost(oracle, o, pos)
			assert.Error(t, err, "vehicle %d position %d should be infeasible", v.VehicleID, pos)
		}
	}
}

func TestSolveSpillsToSecondVehicleOnCapacity(t *testing.T) {
	oracle := fixtureOracle(t)

	cfg := roomy()
	cfg.Capacity = 1
	fleet := fixtureFleet(t, 2, cfg)
	require.NoError(t, fleet.Vehicles[0].Route.ApplyInsertion(oracle, newOrder(1, 1), 0))

	d := New(oracle).Solve(newOrder(2, 2), fleet)

	assert.True(t, d.Inserted)
	assert.Equal(t, 1, d.VehicleID)
	assert.Equal(t, 0, d.Position)
}

func TestSolveDoesNotMutateFleet(t *testing.T) {
	oracle := fixtureOracle(t)
	fleet := fixtureFleet(t, 2, roomy())
	require.NoError(t, fleet.Vehicles[0].Route.ApplyInsertion(oracle, newOrder(1, 1), 0))

	duration := fleet.Vehicles[0].Route.Duration
	stops := fleet.TotalStops()

	New(oracle).Solve(newOrder(2, 2), fleet)

	assert.Equal(t, stops, fleet.TotalStops())
	assert.Equal(t, duration, fleet.Vehicles[0].Route.Duration)
}
