package obs

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "service-area-api"

// InitLogger configures the global zerolog logger.
// Development gets a human-readable console writer; everything else logs JSON.
func InitLogger(env, level string) {
	InitLoggerTo(os.Stdout, env, level)
}

func InitLoggerTo(w io.Writer, env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(level))

	if strings.EqualFold(env, "development") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().
			Timestamp().
			Str("service", serviceName).
			Logger()
		return
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()
}

// Logger returns the global logger, tagged with the request ID when ctx carries one.
func Logger(ctx context.Context) *zerolog.Logger {
	logger := log.With().Logger()

	if reqID := RequestID(ctx); reqID != "" {
		logger = logger.With().Str("req_id", reqID).Logger()
	}

	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
