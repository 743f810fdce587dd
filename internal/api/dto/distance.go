package dto

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DistanceResponse struct {
	From       PointResponse `json:"from"`
	To         PointResponse `json:"to"`
	DistanceKm float64       `json:"distance_km"`
}
