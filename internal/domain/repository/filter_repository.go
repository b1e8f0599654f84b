package repository

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// FilterListParams parámetros del listado administrativo de filtros.
type FilterListParams struct {
	CategoryID string // vacío = todas las categorías
	All        bool   // incluir inactivos
}

// FilterRepository define el puerto de persistencia para Filter (DIP).
type FilterRepository interface {
	Create(ctx context.Context, filter *entity.Filter) error
	GetByID(ctx context.Context, id string) (*entity.Filter, error)
	Update(ctx context.Context, filter *entity.Filter) error
	List(ctx context.Context, params FilterListParams) ([]*entity.Filter, error)
	// ListByCategory devuelve los filtros activos de la categoría y los heredados de
	// ancestros con ApplyToChildren, ordenados por SortOrder.
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error)
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}
