package listingdraft

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/application/location"
	"github.com/chubrika/wineo-admin/internal/application/schema"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// CategoryLister lectura de categorías (listCategories).
type CategoryLister interface {
	List(ctx context.Context) ([]*entity.Category, error)
}

// RegionLister lectura de regiones (listRegions).
type RegionLister interface {
	List(ctx context.Context) ([]*entity.Region, error)
}

// Catalog agrupa los colaboradores de solo lectura que alimentan el borrador.
type Catalog struct {
	Categories CategoryLister
	Regions    RegionLister
	Filters    schema.FilterLister
	Cities     location.CityLister
}

// ListingGateway colaborador de persistencia de anuncios (createListing, updateListing, getListing).
type ListingGateway interface {
	Create(ctx context.Context, payload entity.ListingPayload) (*entity.Listing, error)
	Update(ctx context.Context, id string, payload entity.ListingPayload) (*entity.Listing, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
}
