package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/db"
	"service-area-api/internal/platform/obs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedPath = "../../../data/seeds/service_areas.json"

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func TestSqliteServiceAreaRepositoryListsSeededAreas(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)

	require.NoError(t, SeedFromJSON(ctx, conn, SQLite, seedPath))
	// Seeding is an upsert and can be repeated.
	require.NoError(t, SeedFromJSON(ctx, conn, SQLite, seedPath))

	repo := NewSqliteServiceAreaRepository(conn)
	areas, err := repo.ListServiceAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 8)

	names := make([]string, 0, len(areas))
	for _, a := range areas {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"Canasvieiras",
		"Daniela",
		"Ingleses",
		"Jurerê",
		"Ratones",
		"Santo Antônio de Lisboa",
		"Vargem Grande",
		"Vargem Pequena",
	}, names)

	ratones := areas[4]
	assert.True(t, ratones.Primary)
	assert.Equal(t, domain.NewCoordinates(-27.5132, -48.4618), ratones.Location)
	assert.Equal(t, 2000, ratones.RadiusMeters)
	assert.False(t, areas[0].Primary)
}

func TestUpsertServiceAreasRejectsSecondPrimary(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)

	err := UpsertServiceAreas(ctx, conn, SQLite, []*domain.ServiceArea{
		{Name: "A", Location: domain.NewCoordinates(1, 1), Primary: true, RadiusMeters: 2000},
		{Name: "B", Location: domain.NewCoordinates(2, 2), Primary: true, RadiusMeters: 2000},
	})
	require.Error(t, err)

	areas, err := NewSqliteServiceAreaRepository(conn).ListServiceAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas, "failed upsert must roll back")
}

func TestUpsertServiceAreasMovesPrimaryAndDropsStale(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewSqliteServiceAreaRepository(conn)

	require.NoError(t, UpsertServiceAreas(ctx, conn, SQLite, []*domain.ServiceArea{
		{Name: "A", Location: domain.NewCoordinates(1, 1), Primary: true, RadiusMeters: 2000},
		{Name: "B", Location: domain.NewCoordinates(2, 2), RadiusMeters: 2000},
		{Name: "C", Location: domain.NewCoordinates(3, 3), RadiusMeters: 2000},
	}))

	require.NoError(t, UpsertServiceAreas(ctx, conn, SQLite, []*domain.ServiceArea{
		{Name: "B", Location: domain.NewCoordinates(2, 2), Primary: true, RadiusMeters: 1500},
		{Name: "A", Location: domain.NewCoordinates(1, 1), RadiusMeters: 2000},
	}))

	areas, err := repo.ListServiceAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "A", areas[0].Name)
	assert.False(t, areas[0].Primary)
	assert.Equal(t, "B", areas[1].Name)
	assert.True(t, areas[1].Primary)
	assert.Equal(t, 1500, areas[1].RadiusMeters)

	require.NoError(t, UpsertServiceAreas(ctx, conn, SQLite, nil))
	areas, err = repo.ListServiceAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestSqliteServiceAreaRepositoryLogsOperationTiming(t *testing.T) {
	var buf bytes.Buffer
	obs.InitLoggerTo(&buf, "production", "debug")
	t.Cleanup(func() { obs.InitLogger("production", "info") })

	_, err := NewSqliteServiceAreaRepository(newTestDB(t)).ListServiceAreas(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"op":"service_areas.List"`)
}

func TestSqliteServiceAreaRepositoryNilDB(t *testing.T) {
	_, err := NewSqliteServiceAreaRepository(nil).ListServiceAreas(context.Background())
	assert.ErrorContains(t, err, "DB is nil")
}

func TestLoadSeedsValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		errContains string
	}{
		{name: "empty name", body: `[{"name":" ","lat":0,"lon":1}]`, errContains: "name cannot be empty"},
		{name: "duplicate", body: `[{"name":"A","lat":0,"lon":1},{"name":"A","lat":1,"lon":1}]`, errContains: "duplicate name"},
		{name: "bad latitude", body: `[{"name":"A","lat":91,"lon":1}]`, errContains: "latitude"},
		{name: "negative radius", body: `[{"name":"A","lat":1,"lon":1,"radius_meters":-5}]`, errContains: "must not be negative"},
		{name: "two primaries", body: `[{"name":"A","lat":1,"lon":1,"primary":true},{"name":"B","lat":2,"lon":2,"primary":true}]`, errContains: "flagged primary"},
		{name: "not json", body: `{`, errContains: "parse json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := LoadSeeds(path)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoadSeedsDefaultsRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"  A ","lat":1,"lon":2}]`), 0o600))

	areas, err := LoadSeeds(path)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "A", areas[0].Name)
	assert.Equal(t, domain.DefaultCoverageRadiusMeters, areas[0].RadiusMeters)
}

func TestDialectBind(t *testing.T) {
	assert.Equal(t, "?", SQLite.bind(3))
	assert.Equal(t, "$3", Postgres.bind(3))
}
