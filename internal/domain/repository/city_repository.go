package repository

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// CityRepository define el puerto de persistencia para City (DIP).
type CityRepository interface {
	Create(ctx context.Context, city *entity.City) error
	GetByID(ctx context.Context, id string) (*entity.City, error)
	Update(ctx context.Context, city *entity.City) error
	// List lista ciudades; regionID vacío devuelve todas.
	List(ctx context.Context, regionID string) ([]*entity.City, error)
	Delete(ctx context.Context, id string) error
}
