package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"service-area-api/internal/adapters/repositories"
	"service-area-api/internal/config"
	"service-area-api/internal/platform/db"
	"service-area-api/internal/platform/obs"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	seedOnly := flag.Bool("seed-only", false, "Skip schema creation")
	flag.Parse()

	foundEnv := config.LoadDotEnv()
	obs.InitLogger(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", "info"))
	if !foundEnv {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	conn, dialect, err := open()
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/service_areas.json")
	if err := initAndSeed(context.Background(), conn, dialect, seedPath, !*seedOnly); err != nil {
		log.Error().Err(err).Msg("dbtool failed")
		conn.Close()
		os.Exit(1)
	}
}

// Postgres via DATABASE_URL, falling back to the SQLite file at DB_PATH.
func open() (*sql.DB, repositories.Dialect, error) {
	if databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", "")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		return conn, repositories.Postgres, err
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSQLite(dbPath)
	return conn, repositories.SQLite, err
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string, withSchema bool) error {
	if withSchema {
		log.Info().Str("dialect", string(dialect)).Msg("initializing database schema")
		if err := repositories.InitSchema(ctx, conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		log.Info().Msg("schema ready")
	}

	log.Info().Str("seed_path", seedPath).Msg("seeding service areas")
	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}
