package services

import (
	"context"
	"errors"
	"service-area-api/internal/adapters/distance"
	"service-area-api/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityServiceListFromBase(t *testing.T) {
	svc := NewProximityService(&fakeRepo{areas: seedAreas()}, distance.NewHaversineProvider(), nil)

	ranked, err := svc.ListFromBase(context.Background())
	require.NoError(t, err)
	require.Len(t, ranked, 8)
	assert.Equal(t, "Ratones", ranked[0].Area.Name)
	assert.Equal(t, "Ingleses", ranked[7].Area.Name)
}

func TestProximityServiceListFromBaseErrors(t *testing.T) {
	ctx := context.Background()

	svc := NewProximityService(&fakeRepo{areas: seedAreas()[:3]}, distance.NewHaversineProvider(), nil)
	_, err := svc.ListFromBase(ctx)
	assert.True(t, errors.Is(err, ErrNoPrimaryArea))

	svc = NewProximityService(&fakeRepo{err: errBoom}, distance.NewHaversineProvider(), nil)
	_, err = svc.ListFromBase(ctx)
	assert.True(t, errors.Is(err, errBoom))
}

func TestProximityServiceNearbyUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{areas: seedAreas()}
	cache := newFakeCache()
	svc := NewProximityService(repo, distance.NewHaversineProvider(), cache)

	opts := RankOptions{Limit: 2}
	first, err := svc.Nearby(ctx, cityCentre, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Santo Antônio de Lisboa", "Ratones"}, names(first))
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.puts)

	second, err := svc.Nearby(ctx, cityCentre, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second call must be served from cache")

	// Different options use a different key.
	_, err = svc.Nearby(ctx, cityCentre, RankOptions{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestProximityServiceNearbyToleratesCacheFailures(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errBoom
	cache.putErr = errBoom
	svc := NewProximityService(&fakeRepo{areas: seedAreas()}, distance.NewHaversineProvider(), cache)

	ranked, err := svc.Nearby(context.Background(), ratones, RankOptions{})
	require.NoError(t, err)
	assert.Len(t, ranked, 8)
	assert.Equal(t, 1, cache.puts)
}

func TestProximityServiceNearbyRejectsInvalidOrigin(t *testing.T) {
	repo := &fakeRepo{areas: seedAreas()}
	svc := NewProximityService(repo, distance.NewHaversineProvider(), nil)

	_, err := svc.Nearby(context.Background(), domain.NewCoordinates(-95, 0), RankOptions{})
	assert.True(t, errors.Is(err, domain.ErrInvalidLatitude))
	assert.Equal(t, 0, repo.calls)

	_, err = svc.Nearest(context.Background(), domain.NewCoordinates(0, 200))
	assert.True(t, errors.Is(err, domain.ErrInvalidLongitude))
}

func TestProximityServiceNearest(t *testing.T) {
	svc := NewProximityService(&fakeRepo{areas: seedAreas()}, distance.NewHaversineProvider(), nil)

	// About 1.1 km north of Ratones.
	nearest, err := svc.Nearest(context.Background(), domain.NewCoordinates(-27.5032, -48.4618))
	require.NoError(t, err)
	assert.Equal(t, "Ratones", nearest.Area.Name)
	assert.True(t, nearest.Covered)

	svc = NewProximityService(&fakeRepo{}, distance.NewHaversineProvider(), nil)
	_, err = svc.Nearest(context.Background(), ratones)
	assert.True(t, errors.Is(err, ErrNoServiceAreas))
}

func TestProximityServiceMatrix(t *testing.T) {
	svc := NewProximityService(&fakeRepo{areas: seedAreas()}, distance.NewHaversineProvider(), nil)
	svc.MatrixWorkers = 3

	m, err := svc.Matrix(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.DistanceKm, 8)
}

func TestProximityServiceDistance(t *testing.T) {
	svc := NewProximityService(&fakeRepo{}, distance.NewHaversineProvider(), nil)

	km, err := svc.Distance(context.Background(), ratones, cityCentre)
	require.NoError(t, err)
	assert.InDelta(t, 12.7, km, 0.1)

	_, err = svc.Distance(context.Background(), ratones, domain.NewCoordinates(91, 0))
	assert.ErrorContains(t, err, "destination")
	assert.True(t, errors.Is(err, domain.ErrInvalidLatitude))
}

func TestNearbyCacheKey(t *testing.T) {
	assert.Equal(t,
		"-27.59690,-48.54950|limit=2|max=15",
		nearbyCacheKey(cityCentre, RankOptions{Limit: 2, MaxDistanceKm: 15}),
	)
}
