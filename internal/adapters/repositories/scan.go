package repositories

import (
	"database/sql"
	"fmt"
	"service-area-api/internal/domain"
)

const listServiceAreasQuery = `
	SELECT
		name,
		lat,
		lon,
		is_primary,
		radius_meters
	FROM service_areas
	ORDER BY name;
	`

// Postgres sorts by locale collation unless told otherwise; "C" matches SQLite's byte order.
const listServiceAreasQueryPostgres = `
	SELECT
		name,
		lat,
		lon,
		is_primary,
		radius_meters
	FROM service_areas
	ORDER BY name COLLATE "C";
	`

func scanServiceAreas(rows *sql.Rows) ([]*domain.ServiceArea, error) {
	areas := make([]*domain.ServiceArea, 0, 16)
	for rows.Next() {
		var (
			name      string
			lat, lon  float64
			isPrimary bool
			radius    int
		)
		if err := rows.Scan(&name, &lat, &lon, &isPrimary, &radius); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		areas = append(areas, &domain.ServiceArea{
			Name:         name,
			Location:     domain.NewCoordinates(lat, lon),
			Primary:      isPrimary,
			RadiusMeters: radius,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return areas, nil
}
