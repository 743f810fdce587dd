package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{Lat: lat, Lon: lon}
}

// Validate reports whether the coordinates lie inside the latitude/longitude domain.
// The distance calculation never calls it; it guards input boundaries (HTTP, seeds).
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinates: lat=%v: %w", c.Lat, ErrInvalidLatitude)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinates: lon=%v: %w", c.Lon, ErrInvalidLongitude)
	}
	return nil
}

// Return a stable "lat,lon" key, used by mocks and caches.
func (c Coordinates) Key() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
