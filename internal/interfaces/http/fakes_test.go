package http_test

import (
	"context"
	"sort"
	"sync"

	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

// store repositorios en memoria para probar los handlers de punta a punta.
type store struct {
	mu         sync.Mutex
	categories map[string]entity.Category
	filters    map[string]entity.Filter
	regions    map[string]entity.Region
	cities     map[string]entity.City
	listings   map[string]entity.Listing
	submitErr  error
}

func newStore() *store {
	return &store{
		categories: map[string]entity.Category{},
		filters:    map[string]entity.Filter{},
		regions:    map[string]entity.Region{},
		cities:     map[string]entity.City{},
		listings:   map[string]entity.Listing{},
	}
}

func (s *store) RunTaxonomy(_ context.Context, fn func(repository.CategoryRepository, repository.FilterRepository) error) error {
	return fn(categoryRepo{s}, filterRepo{s})
}

func values[T any](s *store, m map[string]T, keep func(T) bool, less func(a, b T) bool) []*T {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*T
	for _, v := range m {
		v := v
		if keep == nil || keep(v) {
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(*out[i], *out[j]) })
	return out
}

func get[T any](s *store, m map[string]T, id string) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

func put[T any](s *store, m map[string]T, id string, v T) {
	s.mu.Lock()
	m[id] = v
	s.mu.Unlock()
}

func drop[T any](s *store, m map[string]T, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m, id)
	return nil
}

type categoryRepo struct{ s *store }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, o := range values(r.s, r.s.categories, nil, func(a, b entity.Category) bool { return a.ID < b.ID }) {
		if o.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	put(r.s, r.s.categories, c.ID, *c)
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return get(r.s, r.s.categories, id), nil
}

func (r categoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	list := values(r.s, r.s.categories, func(c entity.Category) bool { return c.Slug == slug },
		func(a, b entity.Category) bool { return a.ID < b.ID })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	put(r.s, r.s.categories, c.ID, *c)
	return nil
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	return values(r.s, r.s.categories, nil, func(a, b entity.Category) bool { return a.Name < b.Name }), nil
}

func (r categoryRepo) CountChildren(_ context.Context, id string) (int, error) {
	return len(values(r.s, r.s.categories, func(c entity.Category) bool { return c.ParentID == id },
		func(a, b entity.Category) bool { return a.ID < b.ID })), nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	return drop(r.s, r.s.categories, id)
}

type filterRepo struct{ s *store }

func (r filterRepo) Create(_ context.Context, f *entity.Filter) error {
	put(r.s, r.s.filters, f.ID, *f)
	return nil
}

func (r filterRepo) GetByID(_ context.Context, id string) (*entity.Filter, error) {
	return get(r.s, r.s.filters, id), nil
}

func (r filterRepo) Update(_ context.Context, f *entity.Filter) error {
	put(r.s, r.s.filters, f.ID, *f)
	return nil
}

func (r filterRepo) List(_ context.Context, p repository.FilterListParams) ([]*entity.Filter, error) {
	return values(r.s, r.s.filters, func(f entity.Filter) bool {
		return (p.CategoryID == "" || f.CategoryID == p.CategoryID) && (p.All || f.IsActive)
	}, func(a, b entity.Filter) bool { return a.Name < b.Name }), nil
}

func (r filterRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error) {
	return r.List(ctx, repository.FilterListParams{CategoryID: categoryID})
}

func (r filterRepo) Delete(_ context.Context, id string) error {
	return drop(r.s, r.s.filters, id)
}

func (r filterRepo) DeleteByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, f := range values(r.s, r.s.filters, func(f entity.Filter) bool { return f.CategoryID == categoryID },
		func(a, b entity.Filter) bool { return a.ID < b.ID }) {
		_ = drop(r.s, r.s.filters, f.ID)
		n++
	}
	return n, nil
}

type regionRepo struct{ s *store }

func (r regionRepo) Create(_ context.Context, x *entity.Region) error {
	put(r.s, r.s.regions, x.ID, *x)
	return nil
}

func (r regionRepo) GetByID(_ context.Context, id string) (*entity.Region, error) {
	return get(r.s, r.s.regions, id), nil
}

func (r regionRepo) Update(_ context.Context, x *entity.Region) error {
	put(r.s, r.s.regions, x.ID, *x)
	return nil
}

func (r regionRepo) List(_ context.Context) ([]*entity.Region, error) {
	return values(r.s, r.s.regions, nil, func(a, b entity.Region) bool { return a.Label < b.Label }), nil
}

func (r regionRepo) Delete(_ context.Context, id string) error {
	return drop(r.s, r.s.regions, id)
}

type cityRepo struct{ s *store }

func (r cityRepo) Create(_ context.Context, x *entity.City) error {
	put(r.s, r.s.cities, x.ID, *x)
	return nil
}

func (r cityRepo) GetByID(_ context.Context, id string) (*entity.City, error) {
	return get(r.s, r.s.cities, id), nil
}

func (r cityRepo) Update(_ context.Context, x *entity.City) error {
	put(r.s, r.s.cities, x.ID, *x)
	return nil
}

func (r cityRepo) List(_ context.Context, regionID string) ([]*entity.City, error) {
	return values(r.s, r.s.cities, func(c entity.City) bool { return regionID == "" || c.RegionID == regionID },
		func(a, b entity.City) bool { return a.Label < b.Label }), nil
}

func (r cityRepo) Delete(_ context.Context, id string) error {
	return drop(r.s, r.s.cities, id)
}

type listingRepo struct{ s *store }

func (r listingRepo) Create(_ context.Context, p entity.ListingPayload) (*entity.Listing, error) {
	return r.save("l-1", p)
}

func (r listingRepo) Update(_ context.Context, id string, p entity.ListingPayload) (*entity.Listing, error) {
	return r.save(id, p)
}

func (r listingRepo) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	return get(r.s, r.s.listings, id), nil
}

func (r listingRepo) Delete(_ context.Context, id string) error {
	return drop(r.s, r.s.listings, id)
}

func (r listingRepo) save(id string, p entity.ListingPayload) (*entity.Listing, error) {
	r.s.mu.Lock()
	err := r.s.submitErr
	r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	l := entity.Listing{
		ID:         id,
		Title:      p.Title,
		Type:       p.Type,
		CategoryID: p.CategoryID,
		Category:   p.Category,
		Currency:   p.Currency,
		PriceType:  p.PriceType,
		Location:   p.Location,
		Status:     entity.StatusActive,
	}
	put(r.s, r.s.listings, id, l)
	return &l, nil
}
