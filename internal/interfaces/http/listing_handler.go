package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chubrika/wineo-admin/internal/application/usecase"
)

// ListingHandler lectura y baja de anuncios guardados.
type ListingHandler struct {
	uc *usecase.ListingUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(uc *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener anuncio por ID
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del anuncio"
// @Success      200  {object}  entity.Listing
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "anuncio")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar anuncio
// @Tags         listings
// @Security     Bearer
// @Param        id   path  string  true  "ID del anuncio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
