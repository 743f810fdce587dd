package handlers

import (
	"net/http"
	"service-area-api/internal/api/dto"
	"service-area-api/internal/services"
	"strconv"
	"strings"
)

const maxNearbyLimit = 50

// AreaHandler exposes read-only service area proximity endpoints.
type AreaHandler struct {
	Service *services.ProximityService
}

// List all service areas ranked by distance from the business base.
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ranked, err := h.Service.ListFromBase(r.Context())
	if err != nil {
		writeServiceError(w, r, "areas.list", err)
		return
	}

	areas := toAreaDistanceResponses(ranked)
	writeJSON(w, r, http.StatusOK, dto.ListAreasResponse{Areas: areas, Count: len(areas)})
}

// Nearby ranks service areas from ?lat=&lon=, with optional limit and max_km.
func (h *AreaHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	origin, err := parseCoordinates(r, "lat", "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts := services.RankOptions{}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxNearbyLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		opts.Limit = limit
	}

	if strings.TrimSpace(r.URL.Query().Get("max_km")) != "" {
		maxKm, err := parseFloatParam(r, "max_km")
		if err != nil || maxKm <= 0 {
			writeError(w, r, http.StatusBadRequest, "max_km must be a positive number")
			return
		}
		opts.MaxDistanceKm = maxKm
	}

	ranked, err := h.Service.Nearby(r.Context(), origin, opts)
	if err != nil {
		writeServiceError(w, r, "areas.nearby", err)
		return
	}

	areas := toAreaDistanceResponses(ranked)
	writeJSON(w, r, http.StatusOK, dto.ListAreasResponse{
		Origin: &dto.PointResponse{Lat: origin.Lat, Lon: origin.Lon},
		Areas:  areas,
		Count:  len(areas),
	})
}

// Nearest returns the single closest service area to ?lat=&lon=.
func (h *AreaHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	origin, err := parseCoordinates(r, "lat", "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	nearest, err := h.Service.Nearest(r.Context(), origin)
	if err != nil {
		writeServiceError(w, r, "areas.nearest", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAreaDistanceResponse(*nearest))
}

func (h *AreaHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	m, err := h.Service.Matrix(r.Context())
	if err != nil {
		writeServiceError(w, r, "areas.matrix", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MatrixResponse{Names: m.Names, DistanceKm: m.DistanceKm})
}
