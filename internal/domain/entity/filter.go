package entity

import "time"

// FilterType tipo de atributo dinámico de una categoría.
type FilterType string

const (
	FilterSelect   FilterType = "select"
	FilterRange    FilterType = "range"
	FilterCheckbox FilterType = "checkbox"
	FilterNumber   FilterType = "number"
	FilterText     FilterType = "text"
)

// Valid indica si el tipo es uno de los soportados.
func (t FilterType) Valid() bool {
	switch t {
	case FilterSelect, FilterRange, FilterCheckbox, FilterNumber, FilterText:
		return true
	}
	return false
}

// IsNumeric indica si los valores del filtro son numéricos (range y number).
func (t FilterType) IsNumeric() bool {
	return t == FilterRange || t == FilterNumber
}

// Filter define un atributo (ej. "Potencia (kW)") aplicable a los anuncios de una categoría.
// Options solo tiene sentido cuando Type = select.
type Filter struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Type            FilterType `json:"type"`
	Options         []string   `json:"options,omitempty"`
	Unit            string     `json:"unit"`
	CategoryID      string     `json:"categoryId"`
	ApplyToChildren bool       `json:"applyToChildren"` // heredado por categorías descendientes
	IsRequired      bool       `json:"isRequired"`
	SortOrder       int        `json:"sortOrder"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Normalize descarta Options cuando el tipo no es select.
func (f *Filter) Normalize() {
	if f.Type != FilterSelect {
		f.Options = nil
	}
}

// HasOption indica si v es una de las opciones del select.
func (f Filter) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}
