package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
)

// DraftHandler expone el editor de anuncios: cada borrador es una sesión en memoria
// del operador autenticado que recibe ediciones y se envía a persistencia al final.
type DraftHandler struct {
	uc *usecase.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir borrador (nuevo o edición de un anuncio)
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        listingId  query  string  false  "Anuncio a editar"
// @Success      201  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Open(c *fiber.Ctx) error {
	out, err := h.uc.Open(c.UserContext(), GetUserID(c), c.Query("listingId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado del borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "borrador")
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Aplicar ediciones al borrador
// @Description  Las ediciones se aplican en orden; la primera rechazada detiene el lote.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.DraftEventsRequest  true  "Ediciones"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/events [post]
func (h *DraftHandler) Apply(c *fiber.Ctx) error {
	var in dto.DraftEventsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Events) == 0 && !in.Wait {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "events es requerido"})
	}
	out, err := h.uc.Apply(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "borrador")
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar borrador
// @Description  Crea o actualiza el anuncio. Si la persistencia falla el borrador sigue abierto (502) y puede reintentarse.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Failure      502  {object}  dto.DraftResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, listingdraft.ErrSubmitFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(out)
		}
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "borrador")
	}
	return c.JSON(out)
}

// DismissNotices godoc
// @Summary      Descartar avisos del borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/notices/dismiss [post]
func (h *DraftHandler) DismissNotices(c *fiber.Ctx) error {
	out, err := h.uc.DismissNotices(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "borrador")
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Cerrar el editor y descartar el borrador
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
