package repository

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// RegionRepository define el puerto de persistencia para Region (DIP).
type RegionRepository interface {
	Create(ctx context.Context, region *entity.Region) error
	GetByID(ctx context.Context, id string) (*entity.Region, error)
	Update(ctx context.Context, region *entity.Region) error
	List(ctx context.Context) ([]*entity.Region, error)
	Delete(ctx context.Context, id string) error
}
