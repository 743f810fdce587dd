package domain

import "math"

// Mean Earth radius used by the spherical model.
const EarthRadiusKm = 6371.0

// CalculateDistance returns the great-circle distance in kilometers between two
// points given in decimal degrees, using the haversine formula on a sphere of
// radius EarthRadiusKm.
//
// Inputs are not validated. Out-of-range values still produce a finite number,
// it is just not a meaningful distance. The function is pure and safe for
// concurrent use.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for near-antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Distance in kilometers from c to other.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return CalculateDistance(c.Lat, c.Lon, other.Lat, other.Lon)
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
