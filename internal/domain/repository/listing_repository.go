package repository

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// ListingRepository define el puerto de persistencia para Listing (DIP).
// Create y Update reciben el payload serializado del borrador.
type ListingRepository interface {
	Create(ctx context.Context, payload entity.ListingPayload) (*entity.Listing, error)
	Update(ctx context.Context, id string, payload entity.ListingPayload) (*entity.Listing, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Delete(ctx context.Context, id string) error
}
