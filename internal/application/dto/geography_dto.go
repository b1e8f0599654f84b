package dto

import "time"

// CreateRegionRequest entrada para crear región. Slug vacío se deriva de la etiqueta.
type CreateRegionRequest struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// UpdateRegionRequest entrada para actualizar región.
type UpdateRegionRequest struct {
	Label *string `json:"label"`
	Slug  *string `json:"slug"`
}

// RegionResponse salida de región.
type RegionResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegionListResponse listado de regiones.
type RegionListResponse struct {
	Items []RegionResponse `json:"items"`
}

// CreateCityRequest entrada para crear ciudad.
type CreateCityRequest struct {
	Label    string `json:"label"`
	Slug     string `json:"slug"`
	RegionID string `json:"regionId"`
}

// UpdateCityRequest entrada para actualizar ciudad.
type UpdateCityRequest struct {
	Label    *string `json:"label"`
	Slug     *string `json:"slug"`
	RegionID *string `json:"regionId"`
}

// CityResponse salida de ciudad.
type CityResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Label     string    `json:"label"`
	RegionID  string    `json:"regionId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CityListResponse listado de ciudades.
type CityListResponse struct {
	Items []CityResponse `json:"items"`
}
