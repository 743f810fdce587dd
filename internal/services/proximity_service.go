package services

import (
	"context"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/obs"
	"service-area-api/internal/ports"
)

// ProximityService relates service areas to a point: the business base,
// a visitor's location, or each other.
type ProximityService struct {
	Repo     ports.ServiceAreaRepository
	Provider ports.DistanceProvider
	// Cache is optional; nil disables caching.
	Cache ports.ProximityCache
	// MatrixWorkers bounds concurrent rows in Matrix; 0 uses the default.
	MatrixWorkers int
}

func NewProximityService(
	repo ports.ServiceAreaRepository,
	provider ports.DistanceProvider,
	cache ports.ProximityCache,
) *ProximityService {
	return &ProximityService{Repo: repo, Provider: provider, Cache: cache}
}

// List every service area ranked by distance from the business base.
func (s *ProximityService) ListFromBase(ctx context.Context) (_ []domain.AreaDistance, err error) {
	defer obs.Time(ctx, "proximity.ListFromBase")(&err)

	areas, err := s.Repo.ListServiceAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list from base: %w", err)
	}

	base, err := PrimaryArea(areas)
	if err != nil {
		return nil, fmt.Errorf("list from base: %w", err)
	}

	ranked, err := RankServiceAreas(ctx, base.Location, areas, s.Provider, RankOptions{})
	if err != nil {
		return nil, fmt.Errorf("list from base: %w", err)
	}

	return ranked, nil
}

// Rank service areas by distance from origin.
//
// Results are cached per origin (rounded to 5 decimal places, about 1 m) and
// options. Cache failures are logged and never fail the request.
func (s *ProximityService) Nearby(ctx context.Context, origin domain.Coordinates, opts RankOptions) (_ []domain.AreaDistance, err error) {
	defer obs.Time(ctx, "proximity.Nearby")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}

	key := nearbyCacheKey(origin, opts)
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			obs.Logger(ctx).Warn().Err(err).Str("key", key).Msg("proximity cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	areas, err := s.Repo.ListServiceAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}

	ranked, err := RankServiceAreas(ctx, origin, areas, s.Provider, opts)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, key, ranked); err != nil {
			obs.Logger(ctx).Warn().Err(err).Str("key", key).Msg("proximity cache write failed")
		}
	}

	return ranked, nil
}

// Return the service area closest to origin.
func (s *ProximityService) Nearest(ctx context.Context, origin domain.Coordinates) (_ *domain.AreaDistance, err error) {
	defer obs.Time(ctx, "proximity.Nearest")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("nearest: %w", err)
	}

	areas, err := s.Repo.ListServiceAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearest: %w", err)
	}

	return NearestServiceArea(ctx, origin, areas, s.Provider)
}

// Return pairwise distances between all service areas.
func (s *ProximityService) Matrix(ctx context.Context) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "proximity.Matrix")(&err)

	areas, err := s.Repo.ListServiceAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}

	return BuildDistanceMatrix(ctx, areas, s.Provider, s.MatrixWorkers)
}

// Distance between two arbitrary points, validated.
func (s *ProximityService) Distance(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	if err := origin.Validate(); err != nil {
		return 0, fmt.Errorf("distance: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return 0, fmt.Errorf("distance: destination: %w", err)
	}

	r, err := s.Provider.GetDistance(ctx, origin, destination)
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}

	return r.DistanceKm, nil
}

func nearbyCacheKey(origin domain.Coordinates, opts RankOptions) string {
	return fmt.Sprintf("%.5f,%.5f|limit=%d|max=%g", origin.Lat, origin.Lon, opts.Limit, opts.MaxDistanceKm)
}
