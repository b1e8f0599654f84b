package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
	"github.com/chubrika/wineo-admin/internal/domain/taxonomy"
	"github.com/chubrika/wineo-admin/pkg/slug"
)

// CategoryUseCase casos de uso del árbol de categorías.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	tx    TaxonomyTxRunner
	cache CacheInvalidator
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, tx TaxonomyTxRunner, cache CacheInvalidator) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, cache: cacheOrNop(cache)}
}

// Create crea una categoría. El padre, si se indica, debe existir.
// Devuelve domain.ErrDuplicate si el slug ya está en uso.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	s := slug.OrMake(in.Slug, name)
	if name == "" || s == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureSlugFree(ctx, s, ""); err != nil {
		return nil, err
	}
	tree, err := uc.tree(ctx)
	if err != nil {
		return nil, err
	}
	parentID := strings.TrimSpace(in.ParentID)
	if parentID != "" {
		if _, ok := tree.Get(parentID); !ok {
			return nil, domain.ErrInvalidReference
		}
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        s,
		Description: strings.TrimSpace(in.Description),
		Active:      active,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	if err := tree.Insert(*c); err == nil {
		c.Level = tree.Depth(c.ID)
		c.Path = tree.Ancestors(c.ID)
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría con su nivel y ruta.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	tree, err := uc.tree(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range tree.Rows() {
		if row.Category.ID == id {
			return toCategoryResponse(&row.Category), nil
		}
	}
	return nil, nil
}

// Update actualiza una categoría. Un cambio de padre no puede colgarla de sí misma
// ni de un descendiente.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = name
	}
	if in.Slug != nil {
		s := slug.OrMake(*in.Slug, c.Name)
		if s == "" {
			return nil, domain.ErrInvalidInput
		}
		if s != c.Slug {
			if err := uc.ensureSlugFree(ctx, s, c.ID); err != nil {
				return nil, err
			}
		}
		c.Slug = s
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	tree, err := uc.tree(ctx)
	if err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		parentID := strings.TrimSpace(*in.ParentID)
		if parentID != "" {
			if _, ok := tree.Get(parentID); !ok {
				return nil, domain.ErrInvalidReference
			}
			if tree.IsDescendant(parentID, c.ID) {
				return nil, domain.ErrCyclicParent
			}
		}
		c.ParentID = parentID
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	if c.ParentID != "" {
		c.Path = append(tree.Ancestors(c.ParentID), c.ParentID)
	} else {
		c.Path = nil
	}
	c.Level = len(c.Path)
	return toCategoryResponse(c), nil
}

// List lista todas las categorías (orden del repositorio) con nivel y ruta.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	tree, err := uc.tree(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		c.Level = tree.Depth(c.ID)
		c.Path = tree.Ancestors(c.ID)
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Tree devuelve las filas de la tabla jerárquica: cada padre seguido de sus hijos.
func (uc *CategoryUseCase) Tree(ctx context.Context) (*dto.CategoryTreeResponse, error) {
	tree, err := uc.tree(ctx)
	if err != nil {
		return nil, err
	}
	rows := tree.Rows()
	out := make([]dto.CategoryTreeRow, 0, len(rows))
	for _, r := range rows {
		c := r.Category
		out = append(out, dto.CategoryTreeRow{
			CategoryResponse: *toCategoryResponse(&c),
			Depth:            r.Depth,
			HasChildren:      tree.HasChildren(c.ID),
		})
	}
	return &dto.CategoryTreeResponse{Rows: out}, nil
}

// Delete elimina una categoría sin subcategorías junto con sus filtros, en una transacción.
// Devuelve domain.ErrHasChildren si tiene hijos y domain.ErrNotFound si no existe.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.RunTaxonomy(ctx, func(categories repository.CategoryRepository, filters repository.FilterRepository) error {
		c, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		n, err := categories.CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasChildren
		}
		if _, err := filters.DeleteByCategory(ctx, id); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cache.InvalidateTaxonomy(ctx)
	return nil
}

func (uc *CategoryUseCase) ensureSlugFree(ctx context.Context, s, selfID string) error {
	other, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func (uc *CategoryUseCase) tree(ctx context.Context) (*taxonomy.Tree, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	flat := make([]entity.Category, 0, len(list))
	for _, c := range list {
		flat = append(flat, *c)
	}
	tree, err := taxonomy.Build(flat)
	if err != nil {
		return nil, fmt.Errorf("árbol de categorías: %w", err)
	}
	return tree, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	path := c.Path
	if path == nil {
		path = []string{}
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
		ParentID:    c.ParentID,
		Level:       c.Level,
		Path:        path,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
