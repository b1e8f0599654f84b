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

// FilterUseCase casos de uso CRUD para filtros (atributos dinámicos por categoría).
type FilterUseCase struct {
	repo       repository.FilterRepository
	categories repository.CategoryRepository
	cache      CacheInvalidator
}

// NewFilterUseCase construye el caso de uso. cache puede ser nil.
func NewFilterUseCase(repo repository.FilterRepository, categories repository.CategoryRepository, cache CacheInvalidator) *FilterUseCase {
	return &FilterUseCase{repo: repo, categories: categories, cache: cacheOrNop(cache)}
}

// Create crea un filtro. La categoría debe existir; Options solo se guarda para select.
func (uc *FilterUseCase) Create(ctx context.Context, in dto.CreateFilterRequest) (*dto.FilterResponse, error) {
	name := strings.TrimSpace(in.Name)
	typ := entity.FilterType(strings.TrimSpace(in.Type))
	s := slug.OrMake(in.Slug, name)
	if name == "" || s == "" || !typ.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	f := &entity.Filter{
		ID:              uuid.New().String(),
		Name:            name,
		Slug:            s,
		Type:            typ,
		Options:         cleanOptions(in.Options),
		Unit:            strings.TrimSpace(in.Unit),
		CategoryID:      in.CategoryID,
		ApplyToChildren: in.ApplyToChildren,
		IsRequired:      in.IsRequired,
		SortOrder:       in.SortOrder,
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	f.Normalize()
	if f.Type == entity.FilterSelect && len(f.Options) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	return toFilterResponse(f), nil
}

// GetByID obtiene un filtro por ID.
func (uc *FilterUseCase) GetByID(ctx context.Context, id string) (*dto.FilterResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFilterResponse(f), nil
}

// Update actualiza un filtro.
func (uc *FilterUseCase) Update(ctx context.Context, id string, in dto.UpdateFilterRequest) (*dto.FilterResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		f.Name = name
	}
	if in.Slug != nil {
		if f.Slug = slug.OrMake(*in.Slug, f.Name); f.Slug == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Type != nil {
		typ := entity.FilterType(strings.TrimSpace(*in.Type))
		if !typ.Valid() {
			return nil, domain.ErrInvalidInput
		}
		f.Type = typ
	}
	if in.Options != nil {
		f.Options = cleanOptions(*in.Options)
	}
	if in.Unit != nil {
		f.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		f.CategoryID = *in.CategoryID
	}
	if in.ApplyToChildren != nil {
		f.ApplyToChildren = *in.ApplyToChildren
	}
	if in.IsRequired != nil {
		f.IsRequired = *in.IsRequired
	}
	if in.SortOrder != nil {
		f.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	f.Normalize()
	if f.Type == entity.FilterSelect && len(f.Options) == 0 {
		return nil, domain.ErrInvalidInput
	}
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	return toFilterResponse(f), nil
}

// List listado administrativo: todas las categorías o una; all incluye inactivos.
func (uc *FilterUseCase) List(ctx context.Context, categoryID string, all bool) (*dto.FilterListResponse, error) {
	list, err := uc.repo.List(ctx, repository.FilterListParams{CategoryID: categoryID, All: all})
	if err != nil {
		return nil, err
	}
	return toFilterList(list), nil
}

// ListByCategory filtros efectivos de la categoría, incluidos los heredados.
func (uc *FilterUseCase) ListByCategory(ctx context.Context, categoryID string) (*dto.FilterListResponse, error) {
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toFilterList(list), nil
}

// Delete elimina un filtro por ID.
func (uc *FilterUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	return nil
}

func (uc *FilterUseCase) ensureCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

// cleanOptions recorta, descarta vacías y duplicadas conservando el orden.
func cleanOptions(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, o := range in {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

func toFilterList(list []*entity.Filter) *dto.FilterListResponse {
	items := make([]dto.FilterResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFilterResponse(f))
	}
	return &dto.FilterListResponse{Items: items}
}

func toFilterResponse(f *entity.Filter) *dto.FilterResponse {
	if f == nil {
		return nil
	}
	return &dto.FilterResponse{
		ID:              f.ID,
		Name:            f.Name,
		Slug:            f.Slug,
		Type:            string(f.Type),
		Options:         f.Options,
		Unit:            f.Unit,
		CategoryID:      f.CategoryID,
		ApplyToChildren: f.ApplyToChildren,
		IsRequired:      f.IsRequired,
		SortOrder:       f.SortOrder,
		IsActive:        f.IsActive,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}
