package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/obs"
)

// Postgres-backed implementation of the ServiceAreaRepository port (pgx stdlib driver).
type SQLServiceAreaRepository struct{ DB *sql.DB }

func NewSQLServiceAreaRepository(db *sql.DB) *SQLServiceAreaRepository {
	return &SQLServiceAreaRepository{DB: db}
}

func (s *SQLServiceAreaRepository) ListServiceAreas(ctx context.Context) (_ []*domain.ServiceArea, err error) {
	defer obs.Time(ctx, "service_areas.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql service area repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listServiceAreasQueryPostgres)
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
