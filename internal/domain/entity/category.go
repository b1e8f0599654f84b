package entity

import "time"

// Category representa una categoría de anuncios (árbol por ParentID).
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // único, apto para URL
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	ParentID    string    `json:"parentId,omitempty"` // vacío si es raíz
	Level       int       `json:"level"`
	Path        []string  `json:"path,omitempty"` // IDs de ancestros, raíz primero
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsRoot indica si la categoría no tiene padre.
func (c Category) IsRoot() bool {
	return c.ParentID == ""
}
