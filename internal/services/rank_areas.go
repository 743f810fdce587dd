package services

import (
	"context"
	"errors"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/ports"
	"slices"
)

var (
	ErrNoServiceAreas = errors.New("no service areas configured")
	ErrNoPrimaryArea  = errors.New("no primary service area configured")
)

type RankOptions struct {
	// Keep at most Limit results; 0 keeps all.
	Limit int
	// Drop areas farther than MaxDistanceKm; 0 disables the filter.
	MaxDistanceKm float64
}

// Rank service areas by great-circle distance from origin.
//
// Results are sorted ascending by distance; equal distances are ordered by
// name so the ranking is deterministic. Each result reports whether origin
// lies inside the area's coverage circle.
func RankServiceAreas(
	ctx context.Context,
	origin domain.Coordinates,
	areas []*domain.ServiceArea,
	provider ports.DistanceProvider,
	opts RankOptions,
) ([]domain.AreaDistance, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("rank service areas: limit must not be negative, got %d", opts.Limit)
	}
	if opts.MaxDistanceKm < 0 {
		return nil, fmt.Errorf("rank service areas: max distance must not be negative, got %v", opts.MaxDistanceKm)
	}

	if len(areas) == 0 {
		return []domain.AreaDistance{}, nil
	}

	destinations := make([]domain.Coordinates, 0, len(areas))
	for _, a := range areas {
		if a == nil {
			return nil, errors.New("rank service areas: nil service area")
		}
		destinations = append(destinations, a.Location)
	}

	var results []ports.DistanceResult

	// Prefer batched distance lookups when supported.
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		var err error
		results, err = mp.GetDistances(ctx, origin, destinations)
		if err != nil {
			return nil, fmt.Errorf("rank service areas: get distances from %s: %w", origin.Key(), err)
		}
		if len(results) != len(destinations) {
			return nil, fmt.Errorf("rank service areas: got %d distances for %d areas", len(results), len(destinations))
		}
	} else {
		results = make([]ports.DistanceResult, 0, len(destinations))
		for i, d := range destinations {
			r, err := provider.GetDistance(ctx, origin, d)
			if err != nil {
				return nil, fmt.Errorf("rank service areas: get distance to %q: %w", areas[i].Name, err)
			}
			results = append(results, r)
		}
	}

	ranked := make([]domain.AreaDistance, 0, len(areas))
	for i, a := range areas {
		km := results[i].DistanceKm
		if opts.MaxDistanceKm > 0 && km > opts.MaxDistanceKm {
			continue
		}
		ranked = append(ranked, domain.AreaDistance{
			Area:       *a,
			DistanceKm: km,
			Covered:    km <= a.CoverageRadiusKm(),
		})
	}

	slices.SortFunc(ranked, func(a, b domain.AreaDistance) int {
		if a.DistanceKm < b.DistanceKm {
			return -1
		}
		if a.DistanceKm > b.DistanceKm {
			return 1
		}
		if a.Area.Name < b.Area.Name {
			return -1
		}
		if a.Area.Name > b.Area.Name {
			return 1
		}
		return 0
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return ranked, nil
}

// Return the service area closest to origin.
func NearestServiceArea(
	ctx context.Context,
	origin domain.Coordinates,
	areas []*domain.ServiceArea,
	provider ports.DistanceProvider,
) (*domain.AreaDistance, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("nearest service area: %w", ErrNoServiceAreas)
	}

	ranked, err := RankServiceAreas(ctx, origin, areas, provider, RankOptions{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("nearest service area: %w", err)
	}

	return &ranked[0], nil
}

// Return the business base: the area flagged primary.
func PrimaryArea(areas []*domain.ServiceArea) (*domain.ServiceArea, error) {
	for _, a := range areas {
		if a != nil && a.Primary {
			return a, nil
		}
	}
	return nil, ErrNoPrimaryArea
}
