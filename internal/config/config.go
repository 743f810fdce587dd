package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Port               string
	AppEnv             string
	LogLevel           string
	DBPath             string
	DatabaseURL        string
	SeedPath           string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheTTL           time.Duration
	CORSAllowedOrigins []string
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"APP_ENV":              "development",
	"LOG_LEVEL":            "info",
	"DB_PATH":              "data/app.db",
	"DATABASE_URL":         "",
	"SEED_PATH":            "data/seeds/service_areas.json",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"CACHE_TTL":            "5m",
	"CORS_ALLOWED_ORIGINS": "",
}

// LoadDotEnv loads a .env file if present. It reports whether one was found.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	return v
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := newViper()

	ttl, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("load config: parse CACHE_TTL %q: %w", v.GetString("CACHE_TTL"), err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("load config: CACHE_TTL must be positive, got %s", ttl)
	}

	cfg := &Config{
		Port:          strings.TrimSpace(v.GetString("PORT")),
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		DBPath:        v.GetString("DB_PATH"),
		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		SeedPath:      v.GetString("SEED_PATH"),
		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		CacheTTL:      ttl,
	}

	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("load config: PORT must not be empty")
	}

	return cfg, nil
}

// Get returns a single environment-backed setting or fallback when unset.
func Get(key, fallback string) string {
	v := newViper()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

// UsePostgres reports whether DATABASE_URL selects Postgres over the local SQLite file.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
