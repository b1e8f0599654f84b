package listingdraft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chubrika/wineo-admin/internal/application/location"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

var (
	ErrSessionClosed = errors.New("la sesión de edición está cerrada")
	ErrSubmitting    = errors.New("el borrador se está enviando")
	ErrSubmitFailed  = errors.New("no se pudo guardar el anuncio")
)

// Phase fase de envío de la sesión.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
	PhaseFailed     Phase = "failed"
)

// State resumen del estado del borrador. Las pistas de esquema y ciudades son
// ortogonales; Snapshot expone ambas por separado.
type State string

const (
	StateEmpty            State = "empty"
	StateCategorySelected State = "category_selected"
	StateSchemaResolved   State = "schema_resolved"
	StateRegionSelected   State = "region_selected"
	StateCitiesResolved   State = "cities_resolved"
	StateSubmittable      State = "submittable"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StateFailed           State = "failed"
)

// SessionDeps dependencias de una sesión de edición.
type SessionDeps struct {
	Loader        *Loader
	Listings      ListingGateway
	Logger        zerolog.Logger
	LookupTimeout time.Duration // 0 = sin límite propio
}

// Session es el dueño privado de un borrador durante una edición (un operador, un formulario).
// Todas las mutaciones pasan por mu; las consultas dependientes corren en goroutines y
// su resultado solo se aplica si su ticket sigue vigente.
type Session struct {
	id   string
	deps SessionDeps
	log  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	draft     *Draft
	phase     Phase
	notices   []Notice
	lastError string
	result    *entity.Listing
	closed    bool
	touched   time.Time
	inflight  int
	idle      chan struct{} // cerrado cuando inflight == 0
}

// NewSession abre una sesión sobre un borrador ya cargado (nuevo o reconstruido).
func NewSession(id string, d *Draft, notices []Notice, deps SessionDeps) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	return &Session{
		id:      id,
		deps:    deps,
		log:     deps.Logger.With().Str("draft_id", id).Str("listing_id", d.ListingID).Logger(),
		ctx:     ctx,
		cancel:  cancel,
		draft:   d,
		phase:   PhaseEditing,
		notices: notices,
		touched: time.Now(),
		idle:    idle,
	}
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

// Dispatch aplica una edición. Las que cambian categoría o región lanzan la consulta
// dependiente en segundo plano.
func (s *Session) Dispatch(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.phase == PhaseSubmitting {
		return ErrSubmitting
	}
	s.touched = time.Now()
	eff, err := ev.apply(s.draft)
	if err != nil {
		return err
	}
	if s.phase == PhaseFailed {
		s.phase = PhaseEditing
	}
	if eff.schema != nil {
		s.dropNotice(NoticeFiltersUnavailable)
		s.startLocked()
		go s.loadSchema(*eff.schema)
	}
	if eff.cities != nil {
		s.dropNotice(NoticeCitiesUnavailable)
		s.startLocked()
		go s.loadCities(*eff.cities)
	}
	return nil
}

func (s *Session) loadSchema(t SchemaTicket) {
	ctx, cancel := s.lookupContext()
	defer cancel()
	sch, err := s.deps.Loader.Schemas().Resolve(ctx, t.CategoryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.doneLocked()
	if s.closed {
		return
	}
	if !s.draft.ApplySchema(t, sch, err) {
		s.log.Debug().Str("category_id", t.CategoryID).Uint64("seq", t.Seq).Msg("esquema obsoleto descartado")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("category_id", t.CategoryID).Msg("filtros no disponibles")
		s.notices = append(s.notices, Notice{Kind: NoticeFiltersUnavailable, Message: err.Error()})
	}
}

func (s *Session) loadCities(t location.Ticket) {
	ctx, cancel := s.lookupContext()
	defer cancel()
	cities, err := s.deps.Loader.Places().Resolve(ctx, t.RegionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.doneLocked()
	if s.closed {
		return
	}
	if !s.draft.ApplyCities(t, cities, err) {
		s.log.Debug().Str("region_id", t.RegionID).Uint64("seq", t.Seq).Msg("ciudades obsoletas descartadas")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("region_id", t.RegionID).Msg("ciudades no disponibles")
		s.notices = append(s.notices, Notice{Kind: NoticeCitiesUnavailable, Message: err.Error()})
	}
}

func (s *Session) lookupContext() (context.Context, context.CancelFunc) {
	if s.deps.LookupTimeout > 0 {
		return context.WithTimeout(s.ctx, s.deps.LookupTimeout)
	}
	return context.WithCancel(s.ctx)
}

func (s *Session) startLocked() {
	if s.inflight == 0 {
		s.idle = make(chan struct{})
	}
	s.inflight++
}

func (s *Session) doneLocked() {
	s.inflight--
	if s.inflight == 0 {
		close(s.idle)
	}
}

// Settle espera a que terminen las consultas en vuelo (o a que ctx expire).
func (s *Session) Settle(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit valida, serializa y delega en la persistencia. Éxito: la sesión queda cerrada
// en Submitted. Fallo: Failed con el borrador intacto; se puede reintentar.
func (s *Session) Submit(ctx context.Context) (*entity.Listing, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitting
	}
	if verr := s.draft.Validate(); verr != nil {
		s.mu.Unlock()
		return nil, verr
	}
	payload := s.draft.Payload()
	listingID := s.draft.ListingID
	s.phase = PhaseSubmitting
	s.touched = time.Now()
	s.mu.Unlock()

	var (
		saved *entity.Listing
		err   error
	)
	if listingID == "" {
		saved, err = s.deps.Listings.Create(ctx, payload)
	} else {
		saved, err = s.deps.Listings.Update(ctx, listingID, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseFailed
		s.lastError = err.Error()
		s.log.Error().Err(err).Msg("envío del borrador fallido")
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	s.phase = PhaseSubmitted
	s.lastError = ""
	s.result = saved
	s.closeLocked()
	s.log.Info().Str("saved_id", saved.ID).Msg("borrador guardado")
	return saved, nil
}

// Close descarta el borrador. Las consultas en vuelo se abandonan y sus resultados se ignoran.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// Closed indica si la sesión terminó (enviada o descartada).
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// IdleSince momento de la última edición.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// DismissNotices descarta los avisos mostrados.
func (s *Session) DismissNotices() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = nil
}

func (s *Session) dropNotice(kind NoticeKind) {
	kept := s.notices[:0]
	for _, n := range s.notices {
		if n.Kind != kind {
			kept = append(kept, n)
		}
	}
	s.notices = kept
}

// Snapshot vista de solo lectura del borrador para renderizar el formulario.
type Snapshot struct {
	ID            string
	State         State
	Phase         Phase
	ListingID     string
	Payload       entity.ListingPayload
	RegionID      string
	CityID        string
	SchemaStatus  ResolutionStatus
	CitiesStatus  ResolutionStatus
	Categories    []entity.Category
	Regions       []entity.Region
	Filters       []entity.Filter
	Values        map[string]entity.AttributeValue
	Cities        []entity.City
	PriceEditable bool
	Errors        ValidationErrors
	Notices       []Notice
	LastError     string
	Result        *entity.Listing
}

// Snapshot copia el estado actual.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	values := make(map[string]entity.AttributeValue, len(d.attributes))
	for k, v := range d.attributes {
		values[k] = v
	}
	return Snapshot{
		ID:            s.id,
		State:         s.stateLocked(),
		Phase:         s.phase,
		ListingID:     d.ListingID,
		Payload:       d.Payload(),
		RegionID:      d.RegionID(),
		CityID:        d.CityID(),
		SchemaStatus:  d.schemaStatus,
		CitiesStatus:  d.citiesStatus,
		Categories:    append([]entity.Category(nil), d.categories...),
		Regions:       append([]entity.Region(nil), d.regions...),
		Filters:       append([]entity.Filter(nil), d.schema.Filters...),
		Values:        values,
		Cities:        d.Cities(),
		PriceEditable: d.PriceEditable(),
		Errors:        d.Validate(),
		Notices:       append([]Notice(nil), s.notices...),
		LastError:     s.lastError,
		Result:        s.result,
	}
}

// State estado resumido actual.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch s.phase {
	case PhaseSubmitting:
		return StateSubmitting
	case PhaseSubmitted:
		return StateSubmitted
	case PhaseFailed:
		return StateFailed
	}
	d := s.draft
	switch {
	case d.Submittable():
		return StateSubmittable
	case d.schemaStatus == ResolutionPending:
		return StateCategorySelected
	case d.citiesStatus == ResolutionPending:
		return StateRegionSelected
	case d.citiesStatus.Completed():
		return StateCitiesResolved
	case d.schemaStatus.Completed():
		return StateSchemaResolved
	}
	return StateEmpty
}
