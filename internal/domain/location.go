package domain

// LocationID indexes a location in the travel-time matrix registry.
// The depot is always index 0.
type LocationID int

// DepotID is the registry index of the fleet depot.
const DepotID LocationID = 0

// Immutable geocoded location resolved by the offline matrix build.
type Location struct {
	ID   LocationID
	Name string
	Lat  float64
	Lon  float64
}
