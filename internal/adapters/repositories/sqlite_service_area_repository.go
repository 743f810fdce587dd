package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/obs"
)

// SQLite-backed implementation of the ServiceAreaRepository port.
type SqliteServiceAreaRepository struct{ DB *sql.DB }

func NewSqliteServiceAreaRepository(db *sql.DB) *SqliteServiceAreaRepository {
	return &SqliteServiceAreaRepository{DB: db}
}

// Return all service areas stored in the database.
func (s *SqliteServiceAreaRepository) ListServiceAreas(ctx context.Context) (_ []*domain.ServiceArea, err error) {
	defer obs.Time(ctx, "service_areas.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite service area repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listServiceAreasQuery)
	if err != nil {
		return nil, fmt.Errorf("list service areas: query service_areas table: %w", err)
	}
	defer rows.Close()

	areas, err := scanServiceAreas(rows)
	if err != nil {
		return nil, fmt.Errorf("list service areas: %w", err)
	}

	return areas, nil
}
