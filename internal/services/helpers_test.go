package services

import (
	"context"
	"errors"
	"service-area-api/internal/domain"
	"sync"
)

var (
	ratones    = domain.NewCoordinates(-27.5132, -48.4618)
	cityCentre = domain.NewCoordinates(-27.5969, -48.5495)
)

func seedAreas() []*domain.ServiceArea {
	return []*domain.ServiceArea{
		{Name: "Canasvieiras", Location: domain.NewCoordinates(-27.4278, -48.4778), RadiusMeters: 2000},
		{Name: "Daniela", Location: domain.NewCoordinates(-27.4458, -48.5211), RadiusMeters: 2000},
		{Name: "Ingleses", Location: domain.NewCoordinates(-27.4358, -48.3958), RadiusMeters: 2000},
		{Name: "Jurerê", Location: domain.NewCoordinates(-27.4386, -48.4958), RadiusMeters: 2000},
		{Name: "Ratones", Location: ratones, Primary: true, RadiusMeters: 2000},
		{Name: "Santo Antônio de Lisboa", Location: domain.NewCoordinates(-27.5075, -48.5211), RadiusMeters: 2000},
		{Name: "Vargem Grande", Location: domain.NewCoordinates(-27.4386, -48.4319), RadiusMeters: 2000},
		{Name: "Vargem Pequena", Location: domain.NewCoordinates(-27.4664, -48.4319), RadiusMeters: 2000},
	}
}

func names(results []domain.AreaDistance) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Area.Name)
	}
	return out
}

type fakeRepo struct {
	areas []*domain.ServiceArea
	err   error
	calls int
}

func (r *fakeRepo) ListServiceAreas(ctx context.Context) ([]*domain.ServiceArea, error) {
	r.calls++
	return r.areas, r.err
}

type fakeCache struct {
	mu     sync.Mutex
	items  map[string][]domain.AreaDistance
	getErr error
	putErr error
	puts   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]domain.AreaDistance{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]domain.AreaDistance, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *fakeCache) Put(ctx context.Context, key string, results []domain.AreaDistance) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.items[key] = results
	return nil
}

var errBoom = errors.New("boom")
