package domain

// Represents one service area ranked against a query origin.
// DistanceKm is the great-circle distance from the origin to the area centre.
type AreaDistance struct {
	Area       ServiceArea
	DistanceKm float64
	Covered    bool
}

// Pairwise distances between service areas.
// Names and DistanceKm share the same index order; the matrix is symmetric
// with a zero diagonal.
type DistanceMatrix struct {
	Names      []string
	DistanceKm [][]float64
}

// Return the distance between two named areas, or false if either is unknown.
func (m *DistanceMatrix) Between(from, to string) (float64, bool) {
	i, j := -1, -1
	for k, n := range m.Names {
		if n == from {
			i = k
		}
		if n == to {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.DistanceKm[i][j], true
}
