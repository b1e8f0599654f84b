package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

type draftEnv struct {
	m        *memStore
	listings *memListings
	uc       *usecase.DraftUseCase
}

func newDraftEnv(t *testing.T) *draftEnv {
	t.Helper()
	m := newMemStore()
	m.categories["c1"] = entity.Category{ID: "c1", Name: "Pumps", Slug: "pumps", Active: true}
	m.filters["f-power"] = entity.Filter{ID: "f-power", Name: "Power (kW)", Type: entity.FilterNumber, CategoryID: "c1", IsActive: true}
	m.regions["r1"] = entity.Region{ID: "r1", Slug: "kakheti", Label: "Kakheti"}
	m.cities["ct1"] = entity.City{ID: "ct1", Slug: "telavi", Label: "Telavi", RegionID: "r1"}

	listings := &memListings{m: m}
	loader := listingdraft.NewLoader(listingdraft.Catalog{
		Categories: memCategories{m},
		Regions:    memRegions{m},
		Filters:    memFilters{m},
		Cities:     memCities{m},
	})
	uc := usecase.NewDraftUseCase(loader, listings, usecase.DraftConfig{
		IdleTTL:       time.Minute,
		LookupTimeout: time.Second,
		SettleTimeout: 2 * time.Second,
	}, zerolog.Nop())
	return &draftEnv{m: m, listings: listings, uc: uc}
}

const operator = "u-admin"

func ev(typ string, value interface{}) dto.DraftEventRequest {
	raw, _ := json.Marshal(value)
	return dto.DraftEventRequest{Type: typ, Value: raw}
}

func TestDraft_FlujoCompletoDeAlta(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)

	open, err := env.uc.Open(ctx, operator, "")
	require.NoError(t, err)
	assert.Equal(t, "empty", open.State)
	assert.Len(t, open.Categories, 1)
	assert.Len(t, open.Regions, 1)
	assert.False(t, open.Submittable)

	out, err := env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Wait: true, Events: []dto.DraftEventRequest{
		ev("setTitle", "Bomba de trasiego"),
		ev("setDescription", "Bomba peristáltica"),
		ev("setPrice", "100"),
		ev("selectCategory", "c1"),
		ev("selectRegion", "r1"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "resolved", out.SchemaStatus)
	require.Len(t, out.Filters, 1)
	require.Len(t, out.Cities, 1)

	attr := dto.DraftEventRequest{Type: "setAttribute", FilterID: "f-power", Value: json.RawMessage(`5.5`)}
	out, err = env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("selectCity", "ct1"), attr}})
	require.NoError(t, err)
	assert.True(t, out.Submittable, "%v", out.Errors)
	assert.Equal(t, "submittable", out.State)
	assert.Equal(t, 5.5, out.Values["f-power"].Number())

	sub, err := env.uc.Submit(ctx, operator, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", sub.State)
	require.NotNil(t, sub.Listing)
	assert.Equal(t, "l-new", sub.Listing.ID)
	assert.Equal(t, 0, env.uc.Len(), "la sesión enviada sale del registro")

	missing, err := env.uc.Get(ctx, operator, open.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDraft_EventoInvalidoEsEntradaInvalida(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	open, err := env.uc.Open(ctx, operator, "")
	require.NoError(t, err)

	_, err = env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("paint", "red")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, usecase.ErrUnknownEvent)

	_, err = env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("setRentPeriod", "day")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, listingdraft.ErrRentPeriodForSale)

	_, err = env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("setPrice", "abc")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDraft_EdicionReconstruyeYActualiza(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	env.m.listings["l1"] = entity.Listing{
		ID:          "l1",
		Title:       "Bomba",
		Description: "Usada",
		Type:        entity.ListingSell,
		CategoryID:  "c1",
		Category:    entity.ListingCategory{Name: "Pumps", Slug: "pumps"},
		Currency:    entity.CurrencyUSD,
		PriceType:   entity.PriceNegotiable,
		Location:    entity.ListingLocation{Region: "Kakheti", City: "Telavi"},
		Attributes:  []entity.StoredAttribute{{FilterID: "f-power", Value: json.RawMessage(`3`)}},
	}

	open, err := env.uc.Open(ctx, operator, "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", open.ListingID)
	assert.Equal(t, "ct1", open.CityID)
	assert.False(t, open.PriceEditable)
	assert.Empty(t, open.Notices)
	assert.True(t, open.Submittable, "%v", open.Errors)

	_, err = env.uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("setPrice", 10)}})
	assert.ErrorIs(t, err, listingdraft.ErrPriceFrozen)

	sub, err := env.uc.Submit(ctx, operator, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "l1", sub.Listing.ID)
	assert.Equal(t, entity.CurrencyUSD, env.m.listings["l1"].Currency)

	_, err = env.uc.Open(ctx, operator, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraft_EnvioFallidoConservaSesion(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	env.m.listings["l1"] = entity.Listing{
		ID: "l1", Title: "Bomba", Description: "Usada", Type: entity.ListingSell,
		CategoryID: "c1", Currency: entity.CurrencyGEL, PriceType: entity.PriceFixed,
		Location: entity.ListingLocation{Region: "Kakheti", City: "Telavi"},
	}
	open, err := env.uc.Open(ctx, operator, "l1")
	require.NoError(t, err)

	env.listings.err = errors.New("502 Bad Gateway")
	out, err := env.uc.Submit(ctx, operator, open.ID)
	require.ErrorIs(t, err, listingdraft.ErrSubmitFailed)
	assert.Equal(t, "failed", out.State)
	assert.Contains(t, out.LastError, "502")
	assert.Equal(t, 1, env.uc.Len())

	env.listings.err = nil
	out, err = env.uc.Submit(ctx, operator, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "submitted", out.State)
}

func TestDraft_EnvioInvalidoDevuelveCampos(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	open, err := env.uc.Open(ctx, operator, "")
	require.NoError(t, err)

	out, err := env.uc.Submit(ctx, operator, open.ID)
	var verr listingdraft.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "title")
	assert.Equal(t, "empty", out.State)
}

func TestDraft_DescartarYBarrer(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	a, _ := env.uc.Open(ctx, operator, "")
	_, _ = env.uc.Open(ctx, operator, "")
	require.Equal(t, 2, env.uc.Len())

	require.NoError(t, env.uc.Discard(ctx, operator, a.ID))
	assert.ErrorIs(t, env.uc.Discard(ctx, operator, a.ID), domain.ErrNotFound)
	assert.Equal(t, 1, env.uc.Len())

	assert.Equal(t, 0, env.uc.Sweep(time.Now()))
	assert.Equal(t, 1, env.uc.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, env.uc.Len())
}

func TestDraft_AvisosDescartables(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	env.m.listings["l1"] = entity.Listing{ID: "l1", Title: "x", Location: entity.ListingLocation{Region: "Racha"}}
	open, err := env.uc.Open(ctx, operator, "l1")
	require.NoError(t, err)
	require.NotEmpty(t, open.Notices)
	assert.Equal(t, string(listingdraft.NoticeRegionNotFound), open.Notices[0].Kind)

	out, err := env.uc.DismissNotices(ctx, operator, open.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Notices)
}

func TestDraft_SesionPrivadaDelOperador(t *testing.T) {
	ctx := context.Background()
	env := newDraftEnv(t)
	open, err := env.uc.Open(ctx, operator, "")
	require.NoError(t, err)

	other := "u-otro"
	got, err := env.uc.Get(ctx, other, open.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	applied, err := env.uc.Apply(ctx, other, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("setTitle", "ajeno")}})
	require.NoError(t, err)
	assert.Nil(t, applied)
	sub, err := env.uc.Submit(ctx, other, open.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)
	dismissed, err := env.uc.DismissNotices(ctx, other, open.ID)
	require.NoError(t, err)
	assert.Nil(t, dismissed)
	assert.ErrorIs(t, env.uc.Discard(ctx, other, open.ID), domain.ErrNotFound)
	assert.Equal(t, 1, env.uc.Len(), "el borrador sigue abierto para su dueño")

	mine, err := env.uc.Get(ctx, operator, open.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Empty(t, mine.Form.Title)

	_, err = env.uc.Open(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// slowFilters bloquea la consulta de filtros hasta que se libera release.
type slowFilters struct{ release chan struct{} }

func (f slowFilters) ListByCategory(ctx context.Context, _ string) ([]*entity.Filter, error) {
	select {
	case <-f.release:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestDraft_EnvioRegistraEsperaVencida(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.categories["c1"] = entity.Category{ID: "c1", Name: "Pumps", Slug: "pumps", Active: true}
	filters := slowFilters{release: make(chan struct{})}
	loader := listingdraft.NewLoader(listingdraft.Catalog{
		Categories: memCategories{m},
		Regions:    memRegions{m},
		Filters:    filters,
		Cities:     memCities{m},
	})
	var buf bytes.Buffer
	uc := usecase.NewDraftUseCase(loader, &memListings{m: m}, usecase.DraftConfig{
		IdleTTL:       time.Minute,
		SettleTimeout: 20 * time.Millisecond,
	}, zerolog.New(&buf))

	open, err := uc.Open(ctx, operator, "")
	require.NoError(t, err)
	_, err = uc.Apply(ctx, operator, open.ID, dto.DraftEventsRequest{Events: []dto.DraftEventRequest{ev("selectCategory", "c1")}})
	require.NoError(t, err)

	_, err = uc.Submit(ctx, operator, open.ID)
	var verr listingdraft.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "category")
	assert.Contains(t, buf.String(), "envío con consultas del borrador aún en curso")
	assert.Contains(t, buf.String(), open.ID)

	close(filters.release)
	require.NoError(t, uc.Discard(ctx, operator, open.ID))
}
