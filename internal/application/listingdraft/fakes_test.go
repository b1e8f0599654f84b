package listingdraft_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// ──── Colaboradores falsos ────

type fakeCategories struct {
	list []*entity.Category
	err  error
}

func (f *fakeCategories) List(_ context.Context) ([]*entity.Category, error) {
	return f.list, f.err
}

type fakeRegions struct {
	list []*entity.Region
	err  error
}

func (f *fakeRegions) List(_ context.Context) ([]*entity.Region, error) {
	return f.list, f.err
}

type fakeFilters struct {
	byCategory map[string][]*entity.Filter
	err        error
}

func (f *fakeFilters) ListByCategory(_ context.Context, categoryID string) ([]*entity.Filter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[categoryID], nil
}

// fakeCities devuelve todas las ciudades (el resolver filtra por región). Una región con
// compuerta espera a que se cierre antes de responder.
type fakeCities struct {
	mu    sync.Mutex
	all   []*entity.City
	err   error
	gates map[string]chan struct{}
}

func (f *fakeCities) List(ctx context.Context, regionID string) ([]*entity.City, error) {
	f.mu.Lock()
	gate := f.gates[regionID]
	err := f.err
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return f.all, nil
}

func (f *fakeCities) block(regionID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates == nil {
		f.gates = make(map[string]chan struct{})
	}
	ch := make(chan struct{})
	f.gates[regionID] = ch
	return ch
}

type fakeListings struct {
	mu      sync.Mutex
	err     error
	hold    chan struct{}
	created []entity.ListingPayload
	updated map[string]entity.ListingPayload
	stored  map[string]*entity.Listing
}

func (f *fakeListings) save(ctx context.Context, id string, p entity.ListingPayload) (*entity.Listing, error) {
	f.mu.Lock()
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	l := &entity.Listing{
		ID:          id,
		Title:       p.Title,
		Slug:        p.Slug,
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
	return l, nil
}

func (f *fakeListings) Create(ctx context.Context, p entity.ListingPayload) (*entity.Listing, error) {
	f.mu.Lock()
	f.created = append(f.created, p)
	f.mu.Unlock()
	return f.save(ctx, "nuevo-1", p)
}

func (f *fakeListings) Update(ctx context.Context, id string, p entity.ListingPayload) (*entity.Listing, error) {
	f.mu.Lock()
	if f.updated == nil {
		f.updated = make(map[string]entity.ListingPayload)
	}
	f.updated[id] = p
	f.mu.Unlock()
	return f.save(ctx, id, p)
}

func (f *fakeListings) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[id], nil
}

// ──── Datos de prueba ────

type fixture struct {
	categories *fakeCategories
	regions    *fakeRegions
	filters    *fakeFilters
	cities     *fakeCities
	listings   *fakeListings
}

func newFixture() *fixture {
	return &fixture{
		categories: &fakeCategories{list: []*entity.Category{
			{ID: "c1", Name: "Pumps", Slug: "pumps", Active: true},
			{ID: "c2", Name: "Barrels", Slug: "barrels", Active: true},
		}},
		regions: &fakeRegions{list: []*entity.Region{
			{ID: "r1", Slug: "kakheti", Label: "Kakheti"},
			{ID: "r2", Slug: "imereti", Label: "Imereti"},
		}},
		filters: &fakeFilters{byCategory: map[string][]*entity.Filter{
			"c1": {{ID: "f-power", Name: "Power (kW)", Slug: "power", Type: entity.FilterNumber, Unit: "kW", IsActive: true}},
			"c2": {{ID: "f-cap", Name: "Capacity (L)", Slug: "capacity", Type: entity.FilterNumber, Unit: "L", IsActive: true}},
		}},
		cities: &fakeCities{all: []*entity.City{
			{ID: "ct1", Label: "Telavi", RegionID: "r1"},
			{ID: "ct2", Label: "Sighnaghi", RegionID: "r1"},
			{ID: "ct3", Label: "Kutaisi", RegionID: "r2"},
		}},
		listings: &fakeListings{},
	}
}

func (fx *fixture) loader() *listingdraft.Loader {
	return listingdraft.NewLoader(listingdraft.Catalog{
		Categories: fx.categories,
		Regions:    fx.regions,
		Filters:    fx.filters,
		Cities:     fx.cities,
	})
}

func (fx *fixture) session(t *testing.T, d *listingdraft.Draft, notices []listingdraft.Notice) *listingdraft.Session {
	t.Helper()
	s := listingdraft.NewSession("s1", d, notices, listingdraft.SessionDeps{
		Loader:        fx.loader(),
		Listings:      fx.listings,
		Logger:        zerolog.Nop(),
		LookupTimeout: 5 * time.Second,
	})
	t.Cleanup(s.Close)
	return s
}

func (fx *fixture) newSession(t *testing.T) *listingdraft.Session {
	t.Helper()
	d, notices := fx.loader().NewDraft(context.Background())
	return fx.session(t, d, notices)
}

func settle(t *testing.T, s *listingdraft.Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Settle(ctx))
}

func dispatch(t *testing.T, s *listingdraft.Session, events ...listingdraft.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, s.Dispatch(ev))
	}
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func hasNotice(notices []listingdraft.Notice, kind listingdraft.NoticeKind) bool {
	for _, n := range notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
