package distance

import (
	"context"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/ports"
	"sync/atomic"
)

type MockPair struct {
	From, To   domain.Coordinates
	DistanceKm float64
}

// MockDistanceProvider serves a fixed table of distances. Pairs are looked up
// in both directions. It deliberately does not implement DistanceMatrixProvider
// so callers exercise their one-by-one path.
type MockDistanceProvider struct {
	m     map[string]ports.DistanceResult
	calls atomic.Int64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs)*2)
	for _, p := range pairs {
		r := ports.DistanceResult{DistanceKm: p.DistanceKm}
		m[p.From.Key()+"|"+p.To.Key()] = r
		m[p.To.Key()+"|"+p.From.Key()] = r
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	p.calls.Add(1)

	if origin == destination {
		return ports.DistanceResult{}, nil
	}

	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin.Key(), destination.Key())
	}

	return r, nil
}

// Number of GetDistance calls served so far.
func (p *MockDistanceProvider) Calls() int {
	return int(p.calls.Load())
}
