package services

import (
	"context"
	"service-area-api/internal/adapters/distance"
	"service-area-api/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDistanceMatrixHaversine(t *testing.T) {
	areas := seedAreas()

	m, err := BuildDistanceMatrix(context.Background(), areas, distance.NewHaversineProvider(), 2)
	require.NoError(t, err)
	require.Len(t, m.Names, len(areas))

	for i := range areas {
		assert.Equal(t, 0.0, m.DistanceKm[i][i])
		for j := range areas {
			assert.Equal(t, m.DistanceKm[i][j], m.DistanceKm[j][i])
			assert.Equal(t, areas[i].Location.DistanceTo(areas[j].Location), m.DistanceKm[i][j],
				"%s -> %s", areas[i].Name, areas[j].Name)
		}
	}

	d, ok := m.Between("Ratones", "Ingleses")
	require.True(t, ok)
	assert.InDelta(t, 10.79, d, 0.1)
}

func TestBuildDistanceMatrixOneByOne(t *testing.T) {
	a := &domain.ServiceArea{Name: "A", Location: domain.NewCoordinates(0, 0)}
	b := &domain.ServiceArea{Name: "B", Location: domain.NewCoordinates(0, 1)}
	c := &domain.ServiceArea{Name: "C", Location: domain.NewCoordinates(0, 2)}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: a.Location, To: b.Location, DistanceKm: 1},
		{From: a.Location, To: c.Location, DistanceKm: 2},
		{From: b.Location, To: c.Location, DistanceKm: 1.5},
	})

	m, err := BuildDistanceMatrix(context.Background(), []*domain.ServiceArea{a, b, c}, provider, 0)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{
		{0, 1, 2},
		{1, 0, 1.5},
		{2, 1.5, 0},
	}, m.DistanceKm)
	// Upper triangle only.
	assert.Equal(t, 3, provider.Calls())
}

func TestBuildDistanceMatrixPropagatesError(t *testing.T) {
	a := &domain.ServiceArea{Name: "A", Location: domain.NewCoordinates(0, 0)}
	b := &domain.ServiceArea{Name: "B", Location: domain.NewCoordinates(0, 1)}

	_, err := BuildDistanceMatrix(context.Background(), []*domain.ServiceArea{a, b}, distance.NewMockDistanceProvider(nil), 1)
	assert.ErrorContains(t, err, `from "A" to "B"`)
}

func TestBuildDistanceMatrixSmallInputs(t *testing.T) {
	m, err := BuildDistanceMatrix(context.Background(), nil, distance.NewHaversineProvider(), 0)
	require.NoError(t, err)
	assert.Empty(t, m.Names)

	single := []*domain.ServiceArea{{Name: "Ratones", Location: ratones}}
	m, err = BuildDistanceMatrix(context.Background(), single, distance.NewHaversineProvider(), 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}}, m.DistanceKm)
}
