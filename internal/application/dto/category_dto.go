package dto

import "time"

// CreateCategoryRequest entrada para crear categoría. Slug vacío se deriva del nombre.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	ParentID    string `json:"parentId"`
}

// UpdateCategoryRequest entrada para actualizar categoría (campos opcionales).
// ParentID "" convierte la categoría en raíz.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	ParentID    *string `json:"parentId"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	ParentID    string    `json:"parentId,omitempty"`
	Level       int       `json:"level"`
	Path        []string  `json:"path"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryListResponse listado plano de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CategoryTreeRow fila de la tabla jerárquica (padre seguido de sus hijos).
type CategoryTreeRow struct {
	CategoryResponse
	Depth       int  `json:"depth"`
	HasChildren bool `json:"hasChildren"`
}

// CategoryTreeResponse tabla jerárquica de categorías.
type CategoryTreeResponse struct {
	Rows []CategoryTreeRow `json:"rows"`
}
