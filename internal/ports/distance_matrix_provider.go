package ports

import (
	"context"
	"service-area-api/internal/domain"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations, in destination order.
	GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]DistanceResult, error)
}
