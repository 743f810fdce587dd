package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"service-area-api/internal/domain"
	"strings"
)

// Dialect selects the bind-parameter style of the target database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func (d Dialect) bind(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the service area schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createServiceAreasQuery := `
	CREATE TABLE IF NOT EXISTS service_areas (
		name TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		radius_meters INTEGER NOT NULL DEFAULT 2000
	);
	`

	// At most one base location.
	createPrimaryIndexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_service_areas_primary
	ON service_areas(is_primary) WHERE is_primary;
	`

	statements := []string{
		createServiceAreasQuery,
		createPrimaryIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ServiceAreaSeed struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Primary      bool    `json:"primary"`
	RadiusMeters int     `json:"radius_meters"`
}

// Parse and validate service area seeds from a JSON file.
func LoadSeeds(jsonPath string) ([]*domain.ServiceArea, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", jsonPath, err)
	}

	var data []ServiceAreaSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seeds: parse json: %w", err)
	}

	areas := make([]*domain.ServiceArea, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	primaries := 0
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("load seeds: item at index %d: name cannot be empty", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("load seeds: item at index %d: duplicate name %q", i+1, name)
		}
		seen[name] = struct{}{}

		loc := domain.NewCoordinates(item.Lat, item.Lon)
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("load seeds: item %q: %w", name, err)
		}

		if item.RadiusMeters < 0 {
			return nil, fmt.Errorf("load seeds: item %q: radius_meters must not be negative", name)
		}
		radius := item.RadiusMeters
		if radius == 0 {
			radius = domain.DefaultCoverageRadiusMeters
		}

		if item.Primary {
			primaries++
		}

		areas = append(areas, &domain.ServiceArea{
			Name:         name,
			Location:     loc,
			Primary:      item.Primary,
			RadiusMeters: radius,
		})
	}

	if primaries > 1 {
		return nil, fmt.Errorf("load seeds: %d areas flagged primary, want at most 1", primaries)
	}

	return areas, nil
}

// Populate the database with service areas from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	areas, err := LoadSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed service areas: %w", err)
	}

	return UpsertServiceAreas(ctx, db, dialect, areas)
}

// Make the stored service areas match areas in a single transaction: the primary
// flag is cleared first so it can move between rows, rows missing from areas are
// deleted, and the rest are inserted or updated.
func UpsertServiceAreas(ctx context.Context, db *sql.DB, dialect Dialect, areas []*domain.ServiceArea) error {
	if db == nil {
		return errors.New("upsert service areas: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert service areas: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE service_areas SET is_primary = FALSE WHERE is_primary;`); err != nil {
		return fmt.Errorf("upsert service areas: clear primary: %w", err)
	}

	deleteQuery, deleteArgs := staleServiceAreasQuery(dialect, areas)
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("upsert service areas: delete stale: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO service_areas (
		name,
		lat,
		lon,
		is_primary,
		radius_meters
	)
	VALUES (%s, %s, %s, %s, %s)
	ON CONFLICT (name) DO UPDATE
	SET lat = excluded.lat,
		lon = excluded.lon,
		is_primary = excluded.is_primary,
		radius_meters = excluded.radius_meters;
	`, dialect.bind(1), dialect.bind(2), dialect.bind(3), dialect.bind(4), dialect.bind(5))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert service areas: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range areas {
		if _, err := stmt.ExecContext(ctx, a.Name, a.Location.Lat, a.Location.Lon, a.Primary, a.RadiusMeters); err != nil {
			return fmt.Errorf("upsert service areas: insert name=%q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert service areas: commit tx: %w", err)
	}

	return nil
}

// Build the DELETE for rows whose name is not in areas.
func staleServiceAreasQuery(dialect Dialect, areas []*domain.ServiceArea) (string, []any) {
	if len(areas) == 0 {
		return `DELETE FROM service_areas;`, nil
	}

	binds := make([]string, 0, len(areas))
	args := make([]any, 0, len(areas))
	for i, a := range areas {
		binds = append(binds, dialect.bind(i+1))
		args = append(args, a.Name)
	}

	return fmt.Sprintf(`DELETE FROM service_areas WHERE name NOT IN (%s);`, strings.Join(binds, ", ")), args
}
