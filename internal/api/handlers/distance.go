package handlers

import (
	"net/http"
	"service-area-api/internal/api/dto"
	"service-area-api/internal/services"
)

type DistanceHandler struct {
	Service *services.ProximityService
}

// Get returns the great-circle distance between ?lat1=&lon1= and ?lat2=&lon2=.
func (h *DistanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	from, err := parseCoordinates(r, "lat1", "lon1")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseCoordinates(r, "lat2", "lon2")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	km, err := h.Service.Distance(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, "distance.get", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:       dto.PointResponse{Lat: from.Lat, Lon: from.Lon},
		To:         dto.PointResponse{Lat: to.Lat, Lon: to.Lon},
		DistanceKm: km,
	})
}
