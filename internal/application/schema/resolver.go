// Package schema resuelve el esquema de atributos (filtros) de una categoría y expone
// la superficie tipada para editar valores de atributos de un anuncio.
package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

var (
	// ErrFiltersUnavailable la consulta de filtros falló; el anuncio se edita sin atributos.
	ErrFiltersUnavailable = errors.New("filtros no disponibles")
	// ErrUnknownFilter el filtro no pertenece al esquema resuelto.
	ErrUnknownFilter = errors.New("el filtro no aplica a la categoría seleccionada")
)

// FilterLister puerto de lectura de filtros por categoría (incluye heredados).
type FilterLister interface {
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error)
}

// Schema conjunto ordenado de filtros aplicables a una categoría.
type Schema struct {
	CategoryID string
	Filters    []entity.Filter
	index      map[string]int
}

// newSchema construye el esquema ordenado por SortOrder (estable respecto al orden de entrada).
func newSchema(categoryID string, list []*entity.Filter) Schema {
	filters := make([]entity.Filter, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, f := range list {
		if f == nil || !f.IsActive || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		cp := *f
		cp.Normalize()
		filters = append(filters, cp)
	}
	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].SortOrder < filters[j].SortOrder
	})
	idx := make(map[string]int, len(filters))
	for i, f := range filters {
		idx[f.ID] = i
	}
	return Schema{CategoryID: categoryID, Filters: filters, index: idx}
}

// IsEmpty indica si no hay atributos que mostrar.
func (s Schema) IsEmpty() bool { return len(s.Filters) == 0 }

// Lookup devuelve el filtro por ID.
func (s Schema) Lookup(filterID string) (entity.Filter, bool) {
	i, ok := s.index[filterID]
	if !ok {
		return entity.Filter{}, false
	}
	return s.Filters[i], true
}

// Position posición del filtro en el esquema ordenado.
func (s Schema) Position(filterID string) (int, bool) {
	i, ok := s.index[filterID]
	return i, ok
}

// Required filtros marcados como obligatorios.
func (s Schema) Required() []entity.Filter {
	var out []entity.Filter
	for _, f := range s.Filters {
		if f.IsRequired {
			out = append(out, f)
		}
	}
	return out
}

// Parse interpreta la entrada del operador para un filtro del esquema.
func (s Schema) Parse(filterID, raw string) (entity.AttributeValue, error) {
	f, ok := s.Lookup(filterID)
	if !ok {
		return entity.AttributeValue{}, fmt.Errorf("%w: %s", ErrUnknownFilter, filterID)
	}
	return entity.ParseAttributeValue(f, raw)
}

// Decode interpreta un valor persistido contra el filtro vigente.
func (s Schema) Decode(filterID string, raw json.RawMessage) (entity.AttributeValue, error) {
	f, ok := s.Lookup(filterID)
	if !ok {
		return entity.AttributeValue{}, fmt.Errorf("%w: %s", ErrUnknownFilter, filterID)
	}
	return entity.DecodeAttributeValue(f, raw)
}

// Resolver obtiene el esquema de atributos de una categoría.
type Resolver struct {
	filters FilterLister
}

// NewResolver construye el resolver sobre el puerto de filtros.
func NewResolver(filters FilterLister) *Resolver {
	return &Resolver{filters: filters}
}

// Resolve devuelve los filtros de la categoría ordenados por SortOrder.
// Una categoría vacía produce el esquema vacío sin consultar. Si la consulta falla
// el esquema queda vacío y el error envuelve ErrFiltersUnavailable.
func (r *Resolver) Resolve(ctx context.Context, categoryID string) (Schema, error) {
	if categoryID == "" {
		return Schema{}, nil
	}
	list, err := r.filters.ListByCategory(ctx, categoryID)
	if err != nil {
		return Schema{CategoryID: categoryID}, fmt.Errorf("%w: %w", ErrFiltersUnavailable, err)
	}
	return newSchema(categoryID, list), nil
}
