package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"service-area-api/internal/adapters/cache"
	"service-area-api/internal/adapters/distance"
	"service-area-api/internal/adapters/repositories"
	"service-area-api/internal/api"
	"service-area-api/internal/config"
	"service-area-api/internal/platform/db"
	"service-area-api/internal/platform/obs"
	"service-area-api/internal/ports"
	"service-area-api/internal/services"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, haversine) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	obs.InitLogger(cfg.AppEnv, cfg.LogLevel)
	if !foundEnv {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open service area repository")
	}
	defer conn.Close()

	var proximityCache ports.ProximityCache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer client.Close()

		proximityCache = cache.NewRedisProximityCache(client, cfg.CacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("proximity cache enabled")
	} else {
		log.Info().Msg("proximity cache disabled (REDIS_ADDR not set)")
	}

	svc := services.NewProximityService(repo, distance.NewHaversineProvider(), proximityCache)
	router := api.NewRouter(svc, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

// Postgres when DATABASE_URL is set; otherwise a local SQLite file initialized and seeded on startup.
func openRepository(ctx context.Context, cfg *config.Config) (*sql.DB, ports.ServiceAreaRepository, error) {
	if cfg.UsePostgres() {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewSQLServiceAreaRepository(conn), nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err := repositories.SeedFromJSON(ctx, conn, repositories.SQLite, cfg.SeedPath); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return conn, repositories.NewSqliteServiceAreaRepository(conn), nil
}
