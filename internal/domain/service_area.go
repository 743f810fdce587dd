package domain

// Coverage radius drawn around each area when none is configured.
const DefaultCoverageRadiusMeters = 2000

// Represents a named neighbourhood the business serves.
// Exactly one area is expected to be Primary: the business base.
type ServiceArea struct {
	Name         string
	Location     Coordinates
	Primary      bool
	RadiusMeters int
}

func (a *ServiceArea) CoverageRadiusKm() float64 {
	if a.RadiusMeters <= 0 {
		return DefaultCoverageRadiusMeters / 1000.0
	}
	return float64(a.RadiusMeters) / 1000.0
}

// Report whether p falls inside the area's coverage circle.
func (a *ServiceArea) Covers(p Coordinates) bool {
	return a.Location.DistanceTo(p) <= a.CoverageRadiusKm()
}
