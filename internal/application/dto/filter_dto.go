package dto

import "time"

// CreateFilterRequest entrada para crear un filtro de categoría.
type CreateFilterRequest struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	Unit            string   `json:"unit"`
	CategoryID      string   `json:"categoryId"`
	ApplyToChildren bool     `json:"applyToChildren"`
	IsRequired      bool     `json:"isRequired"`
	SortOrder       int      `json:"sortOrder"`
	IsActive        *bool    `json:"isActive"`
}

// UpdateFilterRequest entrada para actualizar un filtro (campos opcionales).
type UpdateFilterRequest struct {
	Name            *string   `json:"name"`
	Slug            *string   `json:"slug"`
	Type            *string   `json:"type"`
	Options         *[]string `json:"options"`
	Unit            *string   `json:"unit"`
	CategoryID      *string   `json:"categoryId"`
	ApplyToChildren *bool     `json:"applyToChildren"`
	IsRequired      *bool     `json:"isRequired"`
	SortOrder       *int      `json:"sortOrder"`
	IsActive        *bool     `json:"isActive"`
}

// FilterResponse salida de filtro.
type FilterResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Type            string    `json:"type"`
	Options         []string  `json:"options,omitempty"`
	Unit            string    `json:"unit"`
	CategoryID      string    `json:"categoryId"`
	ApplyToChildren bool      `json:"applyToChildren"`
	IsRequired      bool      `json:"isRequired"`
	SortOrder       int       `json:"sortOrder"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FilterListResponse listado de filtros.
type FilterListResponse struct {
	Items []FilterResponse `json:"items"`
}
