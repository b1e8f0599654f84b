package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

// memStore repositorios en memoria para los casos de uso.
type memStore struct {
	mu         sync.Mutex
	categories map[string]entity.Category
	filters    map[string]entity.Filter
	regions    map[string]entity.Region
	cities     map[string]entity.City
	listings   map[string]entity.Listing
	invTax     int
	invGeo     int
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]entity.Category),
		filters:    make(map[string]entity.Filter),
		regions:    make(map[string]entity.Region),
		cities:     make(map[string]entity.City),
		listings:   make(map[string]entity.Listing),
	}
}

func (m *memStore) InvalidateTaxonomy(context.Context) {
	m.mu.Lock()
	m.invTax++
	m.mu.Unlock()
}

func (m *memStore) InvalidateGeography(context.Context) {
	m.mu.Lock()
	m.invGeo++
	m.mu.Unlock()
}

func (m *memStore) RunTaxonomy(ctx context.Context, fn func(repository.CategoryRepository, repository.FilterRepository) error) error {
	return fn(memCategories{m}, memFilters{m})
}

// ──── Categorías ────

type memCategories struct{ m *memStore }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.categories {
		if o.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	r.m.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCategories) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.categories {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCategories) Update(_ context.Context, c *entity.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.categories[c.ID] = *c
	return nil
}

func (r memCategories) List(_ context.Context) ([]*entity.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.m.categories))
	for _, c := range r.m.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCategories) CountChildren(_ context.Context, id string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := 0
	for _, c := range r.m.categories {
		if c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r memCategories) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.categories, id)
	return nil
}

// ──── Filtros ────

type memFilters struct{ m *memStore }

func (r memFilters) Create(_ context.Context, f *entity.Filter) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.filters[f.ID] = *f
	return nil
}

func (r memFilters) GetByID(_ context.Context, id string) (*entity.Filter, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.filters[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r memFilters) Update(_ context.Context, f *entity.Filter) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.filters[f.ID] = *f
	return nil
}

func (r memFilters) List(_ context.Context, p repository.FilterListParams) ([]*entity.Filter, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Filter
	for _, f := range r.m.filters {
		if (p.CategoryID == "" || f.CategoryID == p.CategoryID) && (p.All || f.IsActive) {
			f := f
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r memFilters) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error) {
	return r.List(ctx, repository.FilterListParams{CategoryID: categoryID})
}

func (r memFilters) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.filters[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.filters, id)
	return nil
}

func (r memFilters) DeleteByCategory(_ context.Context, categoryID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for id, f := range r.m.filters {
		if f.CategoryID == categoryID {
			delete(r.m.filters, id)
			n++
		}
	}
	return n, nil
}

// ──── Geografía ────

type memRegions struct{ m *memStore }

func (r memRegions) Create(_ context.Context, x *entity.Region) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.regions[x.ID] = *x
	return nil
}

func (r memRegions) GetByID(_ context.Context, id string) (*entity.Region, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.regions[id]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

func (r memRegions) Update(_ context.Context, x *entity.Region) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.regions[x.ID] = *x
	return nil
}

func (r memRegions) List(_ context.Context) ([]*entity.Region, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Region
	for _, x := range r.m.regions {
		x := x
		out = append(out, &x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r memRegions) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.regions, id)
	return nil
}

type memCities struct{ m *memStore }

func (r memCities) Create(_ context.Context, x *entity.City) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.cities[x.ID] = *x
	return nil
}

func (r memCities) GetByID(_ context.Context, id string) (*entity.City, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	x, ok := r.m.cities[id]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

func (r memCities) Update(_ context.Context, x *entity.City) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.cities[x.ID] = *x
	return nil
}

func (r memCities) List(_ context.Context, regionID string) ([]*entity.City, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.City
	for _, x := range r.m.cities {
		if regionID == "" || x.RegionID == regionID {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r memCities) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.cities, id)
	return nil
}

// ──── Anuncios ────

type memListings struct {
	m   *memStore
	err error
}

func (r *memListings) Create(_ context.Context, p entity.ListingPayload) (*entity.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.put("l-new", p), nil
}

func (r *memListings) Update(_ context.Context, id string, p entity.ListingPayload) (*entity.Listing, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.put(id, p), nil
}

func (r *memListings) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.listings[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memListings) put(id string, p entity.ListingPayload) *entity.Listing {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l := entity.Listing{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		CategoryID:  p.CategoryID,
		Category:    p.Category,
		Currency:    p.Currency,
		PriceType:   p.PriceType,
		RentPeriod:  p.RentPeriod,
		Location:    p.Location,
		Status:      entity.StatusActive,
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	r.m.listings[id] = l
	return &l
}
