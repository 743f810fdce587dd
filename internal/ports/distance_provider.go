package ports

import (
	"context"
	"service-area-api/internal/domain"
)

// Great-circle distance between two locations.
type DistanceResult struct {
	DistanceKm float64
}

// Contract for retrieving distance between locations.
type DistanceProvider interface {
	// Return the distance between two coordinates.
	GetDistance(ctx context.Context, origin domain.Coordinates, destination domain.Coordinates) (DistanceResult, error)
}
