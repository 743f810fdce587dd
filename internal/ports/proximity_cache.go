package ports

import (
	"context"
	"service-area-api/internal/domain"
)

// Cache for ranked proximity results keyed by a caller-built query key.
type ProximityCache interface {
	// Return cached results; ok is false on a miss.
	Get(ctx context.Context, key string) (results []domain.AreaDistance, ok bool, err error)
	Put(ctx context.Context, key string, results []domain.AreaDistance) error
}
