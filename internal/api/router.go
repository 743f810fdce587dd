package api

import (
	"net/http"
	"service-area-api/internal/api/handlers"
	"service-area-api/internal/services"

	"github.com/rs/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// An empty allowedOrigins list allows every origin.
func NewRouter(svc *services.ProximityService, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	areaHandler := &handlers.AreaHandler{Service: svc}
	distanceHandler := &handlers.DistanceHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/areas", areaHandler.List)
	mux.HandleFunc("/areas/nearby", areaHandler.Nearby)
	mux.HandleFunc("/areas/nearest", areaHandler.Nearest)
	mux.HandleFunc("/areas/matrix", areaHandler.Matrix)
	mux.HandleFunc("/distance", distanceHandler.Get)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})

	return requestIDMiddleware(loggingMiddleware(c.Handler(mux)))
}
