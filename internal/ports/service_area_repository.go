package ports

import (
	"context"
	"service-area-api/internal/domain"
)

// Port: a boundary for retrieving ServiceArea entities from a data source.
type ServiceAreaRepository interface {
	// Retrieve all service areas, ordered by name.
	ListServiceAreas(ctx context.Context) ([]*domain.ServiceArea, error)
}
