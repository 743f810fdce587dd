package distance

import (
	"context"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/ports"
)

// HaversineProvider implements DistanceProvider and DistanceMatrixProvider
// on top of the spherical great-circle formula.
//
// It holds no state and is safe for concurrent use.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (p *HaversineProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get haversine distance: %w", err)
	}

	return ports.DistanceResult{DistanceKm: origin.DistanceTo(destination)}, nil
}

// Compute distances from a single origin to many destinations.
func (p *HaversineProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("get haversine distances: after %d of %d: %w", i, len(destinations), err)
		}
		out[i] = ports.DistanceResult{DistanceKm: origin.DistanceTo(d)}
	}

	return out, nil
}
