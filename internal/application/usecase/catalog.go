package usecase

import (
	"context"

	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

// CacheInvalidator descarta las lecturas cacheadas del catálogo tras una escritura.
// Taxonomía = categorías y filtros; geografía = regiones y ciudades.
type CacheInvalidator interface {
	InvalidateTaxonomy(ctx context.Context)
	InvalidateGeography(ctx context.Context)
}

// TaxonomyTxRunner ejecuta fn con repositorios de taxonomía atados a una misma transacción.
type TaxonomyTxRunner interface {
	RunTaxonomy(ctx context.Context, fn func(categories repository.CategoryRepository, filters repository.FilterRepository) error) error
}

type noCache struct{}

func (noCache) InvalidateTaxonomy(context.Context)  {}
func (noCache) InvalidateGeography(context.Context) {}

func cacheOrNop(c CacheInvalidator) CacheInvalidator {
	if c == nil {
		return noCache{}
	}
	return c
}
