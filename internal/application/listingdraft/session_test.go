package listingdraft_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

func fillRequired(t *testing.T, s *listingdraft.Session) {
	t.Helper()
	dispatch(t, s,
		listingdraft.SetTitle{Value: "Bomba de trasiego"},
		listingdraft.SetDescription{Value: "Bomba peristáltica"},
		listingdraft.SetPrice{Value: price(100)},
		listingdraft.SelectCategory{CategoryID: "c1"},
		listingdraft.SelectRegion{RegionID: "r1"},
	)
	settle(t, s)
	dispatch(t, s, listingdraft.SelectCity{CityID: "ct1"})
}

// ──── Envío ────

func TestSession_AltaEnviaPayloadEsperado(t *testing.T) {
	fx := newFixture()
	s := fx.newSession(t)
	assert.Equal(t, listingdraft.StateEmpty, s.State())

	fillRequired(t, s)
	assert.Equal(t, listingdraft.StateSubmittable, s.State())

	saved, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nuevo-1", saved.ID)
	assert.Equal(t, listingdraft.StateSubmitted, s.State())
	assert.True(t, s.Closed())

	require.Len(t, fx.listings.created, 1)
	p := fx.listings.created[0]
	assert.Equal(t, "c1", p.CategoryID)
	assert.Equal(t, entity.ListingCategory{Name: "Pumps", Slug: "pumps"}, p.Category)
	assert.Empty(t, p.RentPeriod)
	assert.Equal(t, entity.ListingLocation{Region: "Kakheti", City: "Telavi"}, p.Location)
	assert.Equal(t, entity.ListingSell, p.Type)
	assert.Equal(t, entity.CurrencyGEL, p.Currency)

	assert.ErrorIs(t, s.Dispatch(listingdraft.SetTitle{Value: "x"}), listingdraft.ErrSessionClosed)
}

func TestSession_EdicionUsaUpdate(t *testing.T) {
	fx := newFixture()
	d, notices := fx.loader().Reconstruct(context.Background(), storedRentListing())
	s := fx.session(t, d, notices)
	dispatch(t, s, listingdraft.SetTitle{Value: "Bomba renovada"})

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fx.listings.created)
	require.Contains(t, fx.listings.updated, "l1")
	assert.Equal(t, "Bomba renovada", fx.listings.updated["l1"].Title)
	assert.Equal(t, entity.RentDay, fx.listings.updated["l1"].RentPeriod)
}

func TestSession_EnvioInvalidoNoLlamaPersistencia(t *testing.T) {
	fx := newFixture()
	s := fx.newSession(t)
	_, err := s.Submit(context.Background())

	var verr listingdraft.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "title")
	assert.Empty(t, fx.listings.created)
	assert.Equal(t, listingdraft.StateEmpty, s.State())
}

func TestSession_FalloDeEnvioConservaBorrador(t *testing.T) {
	fx := newFixture()
	fx.listings.err = errors.New("503 Service Unavailable")
	s := fx.newSession(t)
	fillRequired(t, s)
	before := s.Snapshot().Payload

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, listingdraft.ErrSubmitFailed)

	snap := s.Snapshot()
	assert.Equal(t, listingdraft.StateFailed, snap.State)
	assert.Contains(t, snap.LastError, "503")
	assert.Equal(t, before, snap.Payload, "el borrador queda tal cual")
	assert.False(t, s.Closed())

	// Reintento manual.
	fx.listings.mu.Lock()
	fx.listings.err = nil
	fx.listings.mu.Unlock()
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listingdraft.StateSubmitted, s.State())
	assert.Len(t, fx.listings.created, 2)
}

func TestSession_EditarTrasFalloVuelveAEdicion(t *testing.T) {
	fx := newFixture()
	fx.listings.err = errors.New("boom")
	s := fx.newSession(t)
	fillRequired(t, s)
	_, err := s.Submit(context.Background())
	require.Error(t, err)

	dispatch(t, s, listingdraft.SetTitle{Value: "Otra bomba"})
	snap := s.Snapshot()
	assert.Equal(t, listingdraft.PhaseEditing, snap.Phase)
	assert.Equal(t, listingdraft.StateSubmittable, snap.State)
	assert.Equal(t, "boom", snap.LastError, "el mensaje sigue visible hasta el próximo envío")
}

func TestSession_EdicionBloqueadaDuranteEnvio(t *testing.T) {
	fx := newFixture()
	fx.listings.hold = make(chan struct{})
	s := fx.newSession(t)
	fillRequired(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	assert.Eventually(t, func() bool { return s.State() == listingdraft.StateSubmitting }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.Dispatch(listingdraft.SetTitle{Value: "x"}), listingdraft.ErrSubmitting)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, listingdraft.ErrSubmitting)

	close(fx.listings.hold)
	require.NoError(t, <-done)
}

// ──── Consultas asíncronas ────

func TestSession_UltimaRegionGana(t *testing.T) {
	fx := newFixture()
	gateA := fx.cities.block("r1")
	s := fx.newSession(t)

	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r1"})
	assert.Equal(t, listingdraft.StateRegionSelected, s.State())
	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r2"})

	assert.Eventually(t, func() bool {
		return s.Snapshot().CitiesStatus == listingdraft.ResolutionResolved
	}, time.Second, 5*time.Millisecond)

	// A responde después de B.
	close(gateA)
	settle(t, s)

	snap := s.Snapshot()
	assert.Equal(t, "r2", snap.RegionID)
	require.Len(t, snap.Cities, 1)
	assert.Equal(t, "Kutaisi", snap.Cities[0].Label)
	assert.Equal(t, listingdraft.StateCitiesResolved, snap.State)
}

func TestSession_CategoriaYRegionEnParalelo(t *testing.T) {
	fx := newFixture()
	s := fx.newSession(t)
	dispatch(t, s,
		listingdraft.SelectCategory{CategoryID: "c2"},
		listingdraft.SelectRegion{RegionID: "r1"},
	)
	settle(t, s)

	snap := s.Snapshot()
	assert.Equal(t, listingdraft.ResolutionResolved, snap.SchemaStatus)
	assert.Equal(t, listingdraft.ResolutionResolved, snap.CitiesStatus)
	require.Len(t, snap.Filters, 1)
	assert.Equal(t, "f-cap", snap.Filters[0].ID)
	assert.Len(t, snap.Cities, 2)
}

func TestSession_CambioDeCategoriaNoRecuperaValores(t *testing.T) {
	fx := newFixture()
	s := fx.newSession(t)
	dispatch(t, s, listingdraft.SelectCategory{CategoryID: "c1"})
	settle(t, s)
	dispatch(t, s, listingdraft.SetAttribute{FilterID: "f-power", Value: "5.5"})
	require.Len(t, s.Snapshot().Payload.Attributes, 1)

	dispatch(t, s, listingdraft.SelectCategory{CategoryID: "c2"})
	settle(t, s)
	dispatch(t, s, listingdraft.SelectCategory{CategoryID: "c1"})
	settle(t, s)

	snap := s.Snapshot()
	assert.Empty(t, snap.Values)
	assert.Empty(t, snap.Payload.Attributes)
}

func TestSession_FalloDeFiltrosEsAvisoNoBloqueo(t *testing.T) {
	fx := newFixture()
	fx.filters.err = errors.New("403")
	s := fx.newSession(t)
	fillRequired(t, s)

	snap := s.Snapshot()
	assert.Equal(t, listingdraft.ResolutionUnavailable, snap.SchemaStatus)
	assert.Empty(t, snap.Filters)
	assert.True(t, hasNotice(snap.Notices, listingdraft.NoticeFiltersUnavailable))
	assert.Equal(t, listingdraft.StateSubmittable, snap.State)

	s.DismissNotices()
	assert.Empty(t, s.Snapshot().Notices)
}

func TestSession_FalloDeCiudadesLimpiaCiudad(t *testing.T) {
	fx := newFixture()
	s := fx.newSession(t)
	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r1"})
	settle(t, s)
	dispatch(t, s, listingdraft.SelectCity{CityID: "ct1"})

	fx.cities.mu.Lock()
	fx.cities.err = errors.New("timeout")
	fx.cities.mu.Unlock()
	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r2"})
	settle(t, s)

	snap := s.Snapshot()
	assert.Empty(t, snap.CityID)
	assert.Empty(t, snap.Cities)
	assert.Equal(t, listingdraft.ResolutionUnavailable, snap.CitiesStatus)
	assert.True(t, hasNotice(snap.Notices, listingdraft.NoticeCitiesUnavailable))
	assert.Contains(t, snap.Errors, "city")
}

func TestSession_CerrarIgnoraResultadosTardios(t *testing.T) {
	fx := newFixture()
	gate := fx.cities.block("r1")
	s := fx.newSession(t)
	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r1"})

	s.Close()
	close(gate)
	settle(t, s)

	snap := s.Snapshot()
	assert.Equal(t, listingdraft.ResolutionPending, snap.CitiesStatus)
	assert.Empty(t, snap.Cities)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, listingdraft.ErrSessionClosed)
}

func TestSession_SettleRespetaContexto(t *testing.T) {
	fx := newFixture()
	gate := fx.cities.block("r1")
	defer close(gate)
	s := fx.newSession(t)
	dispatch(t, s, listingdraft.SelectRegion{RegionID: "r1"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Settle(ctx), context.DeadlineExceeded)
}
