package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"service-area-api/internal/api/dto"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/obs"
	"service-area-api/internal/services"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Map service errors onto HTTP statuses. Unknown errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidLatitude), errors.Is(err, domain.ErrInvalidLongitude):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoServiceAreas), errors.Is(err, services.ErrNoPrimaryArea):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		obs.Logger(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func parseFloatParam(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return v, nil
}

func parseCoordinates(r *http.Request, latKey, lonKey string) (domain.Coordinates, error) {
	lat, err := parseFloatParam(r, latKey)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lon, err := parseFloatParam(r, lonKey)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.NewCoordinates(lat, lon), nil
}

func toAreaDistanceResponses(results []domain.AreaDistance) []dto.AreaDistanceResponse {
	out := make([]dto.AreaDistanceResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toAreaDistanceResponse(r))
	}
	return out
}

func toAreaDistanceResponse(r domain.AreaDistance) dto.AreaDistanceResponse {
	return dto.AreaDistanceResponse{
		AreaResponse: dto.AreaResponse{
			Name:         r.Area.Name,
			Lat:          r.Area.Location.Lat,
			Lon:          r.Area.Location.Lon,
			Primary:      r.Area.Primary,
			RadiusMeters: r.Area.RadiusMeters,
		},
		DistanceKm: r.DistanceKm,
		Covered:    r.Covered,
	}
}
