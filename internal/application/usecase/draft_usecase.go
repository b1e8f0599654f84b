package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

// DraftConfig tiempos de las sesiones de edición.
type DraftConfig struct {
	IdleTTL       time.Duration // sesiones sin edición por más tiempo se descartan
	LookupTimeout time.Duration // límite por consulta de esquema/ciudades
	SettleTimeout time.Duration // espera máxima de Wait en una petición
}

// DraftUseCase registro de sesiones de edición de anuncios, una por formulario abierto.
// Cada sesión pertenece al operador que la abrió; para cualquier otro no existe.
type DraftUseCase struct {
	loader   *listingdraft.Loader
	listings listingdraft.ListingGateway
	cfg      DraftConfig
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[string]draftEntry
}

type draftEntry struct {
	operatorID string
	session    *listingdraft.Session
}

// NewDraftUseCase construye el registro.
func NewDraftUseCase(loader *listingdraft.Loader, listings listingdraft.ListingGateway, cfg DraftConfig, log zerolog.Logger) *DraftUseCase {
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = 10 * time.Second
	}
	return &DraftUseCase{
		loader:   loader,
		listings: listings,
		cfg:      cfg,
		log:      log.With().Str("component", "drafts").Logger(),
		sessions: make(map[string]draftEntry),
	}
}

// Open abre un borrador para operatorID: vacío si listingID es "", o reconstruido desde el
// anuncio guardado. Devuelve domain.ErrNotFound si el anuncio no existe.
func (uc *DraftUseCase) Open(ctx context.Context, operatorID, listingID string) (*dto.DraftResponse, error) {
	if operatorID == "" {
		return nil, fmt.Errorf("%w: operador requerido", domain.ErrInvalidInput)
	}
	var (
		d       *listingdraft.Draft
		notices []listingdraft.Notice
	)
	if listingID == "" {
		d, notices = uc.loader.NewDraft(ctx)
	} else {
		l, err := uc.listings.GetByID(ctx, listingID)
		if err != nil {
			return nil, fmt.Errorf("obtener anuncio: %w", err)
		}
		if l == nil {
			return nil, domain.ErrNotFound
		}
		d, notices = uc.loader.Reconstruct(ctx, l)
	}
	s := listingdraft.NewSession(uuid.New().String(), d, notices, listingdraft.SessionDeps{
		Loader:        uc.loader,
		Listings:      uc.listings,
		Logger:        uc.log,
		LookupTimeout: uc.cfg.LookupTimeout,
	})
	uc.mu.Lock()
	uc.sessions[s.ID()] = draftEntry{operatorID: operatorID, session: s}
	uc.mu.Unlock()
	uc.log.Info().Str("draft_id", s.ID()).Str("listing_id", listingID).Str("operator_id", operatorID).Int("notices", len(notices)).Msg("borrador abierto")
	return toDraftResponse(s.Snapshot()), nil
}

// Get devuelve el estado del borrador; nil si no existe.
func (uc *DraftUseCase) Get(_ context.Context, operatorID, id string) (*dto.DraftResponse, error) {
	s := uc.session(operatorID, id)
	if s == nil {
		return nil, nil
	}
	return toDraftResponse(s.Snapshot()), nil
}

// Apply aplica un lote de ediciones en orden. Se detiene en la primera rechazada
// (domain.ErrInvalidInput); las anteriores quedan aplicadas.
func (uc *DraftUseCase) Apply(ctx context.Context, operatorID, id string, in dto.DraftEventsRequest) (*dto.DraftResponse, error) {
	s := uc.session(operatorID, id)
	if s == nil {
		return nil, nil
	}
	for i, req := range in.Events {
		ev, err := decodeEvent(req)
		if err != nil {
			return nil, fmt.Errorf("%w: evento %d: %w", domain.ErrInvalidInput, i, err)
		}
		if err := s.Dispatch(ev); err != nil {
			if errors.Is(err, listingdraft.ErrSubmitting) || errors.Is(err, listingdraft.ErrSessionClosed) {
				return nil, fmt.Errorf("%w: %w", domain.ErrConflict, err)
			}
			return nil, fmt.Errorf("%w: evento %d (%s): %w", domain.ErrInvalidInput, i, req.Type, err)
		}
	}
	if in.Wait {
		wctx, cancel := context.WithTimeout(ctx, uc.cfg.SettleTimeout)
		defer cancel()
		if err := s.Settle(wctx); err != nil {
			uc.log.Warn().Err(err).Str("draft_id", id).Msg("consultas del borrador aún en curso")
		}
	}
	return toDraftResponse(s.Snapshot()), nil
}

// Submit envía el borrador. Con éxito la sesión se retira del registro y la respuesta
// incluye el anuncio guardado. Errores: listingdraft.ValidationErrors si no es enviable,
// listingdraft.ErrSubmitFailed si la persistencia falló (la sesión sigue abierta).
func (uc *DraftUseCase) Submit(ctx context.Context, operatorID, id string) (*dto.DraftResponse, error) {
	s := uc.session(operatorID, id)
	if s == nil {
		return nil, nil
	}
	wctx, cancel := context.WithTimeout(ctx, uc.cfg.SettleTimeout)
	defer cancel()
	if err := s.Settle(wctx); err != nil {
		// Se envía igual; la validación rechaza lo que siga cargando.
		uc.log.Warn().Err(err).Str("draft_id", id).Msg("envío con consultas del borrador aún en curso")
	}

	_, err := s.Submit(ctx)
	out := toDraftResponse(s.Snapshot())
	if err != nil {
		if errors.Is(err, listingdraft.ErrSubmitting) || errors.Is(err, listingdraft.ErrSessionClosed) {
			return out, fmt.Errorf("%w: %w", domain.ErrConflict, err)
		}
		return out, err
	}
	uc.remove(id)
	return out, nil
}

// DismissNotices descarta los avisos del borrador.
func (uc *DraftUseCase) DismissNotices(_ context.Context, operatorID, id string) (*dto.DraftResponse, error) {
	s := uc.session(operatorID, id)
	if s == nil {
		return nil, nil
	}
	s.DismissNotices()
	return toDraftResponse(s.Snapshot()), nil
}

// Discard cierra el editor y descarta el borrador. Devuelve domain.ErrNotFound si no existe.
func (uc *DraftUseCase) Discard(_ context.Context, operatorID, id string) error {
	if uc.session(operatorID, id) == nil {
		return domain.ErrNotFound
	}
	if s := uc.remove(id); s != nil {
		s.Close()
	}
	return nil
}

// Sweep descarta las sesiones inactivas por más de IdleTTL. Devuelve cuántas cerró.
func (uc *DraftUseCase) Sweep(now time.Time) int {
	if uc.cfg.IdleTTL <= 0 {
		return 0
	}
	uc.mu.Lock()
	var stale []*listingdraft.Session
	for id, e := range uc.sessions {
		if e.session.Closed() || now.Sub(e.session.IdleSince()) > uc.cfg.IdleTTL {
			stale = append(stale, e.session)
			delete(uc.sessions, id)
		}
	}
	uc.mu.Unlock()
	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		uc.log.Info().Int("count", len(stale)).Msg("borradores inactivos descartados")
	}
	return len(stale)
}

// RunJanitor ejecuta Sweep periódicamente hasta que ctx termine; al salir cierra todas las sesiones.
func (uc *DraftUseCase) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			uc.closeAll()
			return
		case now := <-ticker.C:
			uc.Sweep(now)
		}
	}
}

// Len cantidad de sesiones abiertas.
func (uc *DraftUseCase) Len() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}

func (uc *DraftUseCase) closeAll() {
	uc.mu.Lock()
	all := uc.sessions
	uc.sessions = make(map[string]draftEntry)
	uc.mu.Unlock()
	for _, e := range all {
		e.session.Close()
	}
}

// session devuelve la sesión solo si la abrió operatorID.
func (uc *DraftUseCase) session(operatorID, id string) *listingdraft.Session {
	uc.mu.Lock()
	e, ok := uc.sessions[id]
	uc.mu.Unlock()
	if !ok {
		return nil
	}
	if e.operatorID != operatorID {
		uc.log.Warn().Str("draft_id", id).Str("operator_id", operatorID).Msg("acceso a borrador de otro operador")
		return nil
	}
	return e.session
}

func (uc *DraftUseCase) remove(id string) *listingdraft.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e := uc.sessions[id]
	delete(uc.sessions, id)
	return e.session
}

func toDraftResponse(s listingdraft.Snapshot) *dto.DraftResponse {
	out := &dto.DraftResponse{
		ID:            s.ID,
		State:         string(s.State),
		Phase:         string(s.Phase),
		ListingID:     s.ListingID,
		Form:          s.Payload,
		RegionID:      s.RegionID,
		CityID:        s.CityID,
		SchemaStatus:  string(s.SchemaStatus),
		CitiesStatus:  string(s.CitiesStatus),
		Categories:    make([]dto.CategoryResponse, 0, len(s.Categories)),
		Regions:       make([]dto.RegionResponse, 0, len(s.Regions)),
		Filters:       make([]dto.FilterResponse, 0, len(s.Filters)),
		Values:        s.Values,
		Cities:        make([]dto.CityResponse, 0, len(s.Cities)),
		PriceEditable: s.PriceEditable,
		Submittable:   s.Errors == nil,
		Errors:        s.Errors,
		LastError:     s.LastError,
		Listing:       s.Result,
	}
	for i := range s.Categories {
		out.Categories = append(out.Categories, *toCategoryResponse(&s.Categories[i]))
	}
	for i := range s.Regions {
		out.Regions = append(out.Regions, *toRegionResponse(&s.Regions[i]))
	}
	for i := range s.Filters {
		out.Filters = append(out.Filters, *toFilterResponse(&s.Filters[i]))
	}
	for i := range s.Cities {
		out.Cities = append(out.Cities, *toCityResponse(&s.Cities[i]))
	}
	for _, n := range s.Notices {
		out.Notices = append(out.Notices, dto.NoticeResponse{Kind: string(n.Kind), Message: n.Message})
	}
	return out
}

// ListingUseCase lectura y baja de anuncios guardados.
type ListingUseCase struct {
	listings repository.ListingRepository
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(listings repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{listings: listings}
}

// GetByID obtiene un anuncio; nil si no existe.
func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listings.GetByID(ctx, id)
}

// Delete elimina un anuncio. Un borrador abierto sobre él fallará al enviarse
// (domain.ErrNotFound desde la persistencia) y quedará en Failed.
func (uc *ListingUseCase) Delete(ctx context.Context, id string) error {
	return uc.listings.Delete(ctx, id)
}
