package dto

type AreaResponse struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Primary      bool    `json:"primary"`
	RadiusMeters int     `json:"radius_meters"`
}

type AreaDistanceResponse struct {
	AreaResponse
	DistanceKm float64 `json:"distance_km"`
	Covered    bool    `json:"covered"`
}

type ListAreasResponse struct {
	Origin *PointResponse         `json:"origin,omitempty"`
	Areas  []AreaDistanceResponse `json:"areas"`
	Count  int                    `json:"count"`
}

type MatrixResponse struct {
	Names      []string    `json:"names"`
	DistanceKm [][]float64 `json:"distance_km"`
}
