package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
	"github.com/chubrika/wineo-admin/pkg/slug"
)

// GeographyUseCase casos de uso CRUD para regiones y ciudades.
type GeographyUseCase struct {
	regions repository.RegionRepository
	cities  repository.CityRepository
	cache   CacheInvalidator
}

// NewGeographyUseCase construye el caso de uso. cache puede ser nil.
func NewGeographyUseCase(regions repository.RegionRepository, cities repository.CityRepository, cache CacheInvalidator) *GeographyUseCase {
	return &GeographyUseCase{regions: regions, cities: cities, cache: cacheOrNop(cache)}
}

// CreateRegion crea una región.
func (uc *GeographyUseCase) CreateRegion(ctx context.Context, in dto.CreateRegionRequest) (*dto.RegionResponse, error) {
	label := strings.TrimSpace(in.Label)
	s := slug.OrMake(in.Slug, label)
	if label == "" || s == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Region{ID: uuid.New().String(), Slug: s, Label: label, CreatedAt: now, UpdatedAt: now}
	if err := uc.regions.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.cache.InvalidateGeography(ctx)
	return toRegionResponse(r), nil
}

// UpdateRegion actualiza una región.
func (uc *GeographyUseCase) UpdateRegion(ctx context.Context, id string, in dto.UpdateRegionRequest) (*dto.RegionResponse, error) {
	r, err := uc.regions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if in.Label != nil {
		label := strings.TrimSpace(*in.Label)
		if label == "" {
			return nil, domain.ErrInvalidInput
		}
		r.Label = label
	}
	if in.Slug != nil {
		if r.Slug = slug.OrMake(*in.Slug, r.Label); r.Slug == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	r.UpdatedAt = time.Now()
	if err := uc.regions.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.cache.InvalidateGeography(ctx)
	return toRegionResponse(r), nil
}

// ListRegions lista las regiones ordenadas por etiqueta.
func (uc *GeographyUseCase) ListRegions(ctx context.Context) (*dto.RegionListResponse, error) {
	list, err := uc.regions.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegionResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRegionResponse(r))
	}
	return &dto.RegionListResponse{Items: items}, nil
}

// DeleteRegion elimina una región. Las ciudades que la referencian lo impiden (domain.ErrConflict).
func (uc *GeographyUseCase) DeleteRegion(ctx context.Context, id string) error {
	if err := uc.regions.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateGeography(ctx)
	return nil
}

// CreateCity crea una ciudad en una región existente.
func (uc *GeographyUseCase) CreateCity(ctx context.Context, in dto.CreateCityRequest) (*dto.CityResponse, error) {
	label := strings.TrimSpace(in.Label)
	s := slug.OrMake(in.Slug, label)
	if label == "" || s == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureRegion(ctx, in.RegionID); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.City{ID: uuid.New().String(), Slug: s, Label: label, RegionID: in.RegionID, CreatedAt: now, UpdatedAt: now}
	if err := uc.cities.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.InvalidateGeography(ctx)
	return toCityResponse(c), nil
}

// UpdateCity actualiza una ciudad; un cambio de región exige que la nueva exista.
func (uc *GeographyUseCase) UpdateCity(ctx context.Context, id string, in dto.UpdateCityRequest) (*dto.CityResponse, error) {
	c, err := uc.cities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if in.Label != nil {
		label := strings.TrimSpace(*in.Label)
		if label == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Label = label
	}
	if in.Slug != nil {
		if c.Slug = slug.OrMake(*in.Slug, c.Label); c.Slug == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.RegionID != nil && *in.RegionID != c.RegionID {
		if err := uc.ensureRegion(ctx, *in.RegionID); err != nil {
			return nil, err
		}
		c.RegionID = *in.RegionID
	}
	c.UpdatedAt = time.Now()
	if err := uc.cities.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.InvalidateGeography(ctx)
	return toCityResponse(c), nil
}

// ListCities lista ciudades; regionID vacío devuelve todas.
func (uc *GeographyUseCase) ListCities(ctx context.Context, regionID string) (*dto.CityListResponse, error) {
	list, err := uc.cities.List(ctx, regionID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CityResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCityResponse(c))
	}
	return &dto.CityListResponse{Items: items}, nil
}

// DeleteCity elimina una ciudad.
func (uc *GeographyUseCase) DeleteCity(ctx context.Context, id string) error {
	if err := uc.cities.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateGeography(ctx)
	return nil
}

func (uc *GeographyUseCase) ensureRegion(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	r, err := uc.regions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

func toRegionResponse(r *entity.Region) *dto.RegionResponse {
	return &dto.RegionResponse{ID: r.ID, Slug: r.Slug, Label: r.Label, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func toCityResponse(c *entity.City) *dto.CityResponse {
	return &dto.CityResponse{ID: c.ID, Slug: c.Slug, Label: c.Label, RegionID: c.RegionID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
