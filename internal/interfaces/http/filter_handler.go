package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
)

// FilterHandler maneja las peticiones HTTP para los filtros (atributos) de categoría.
type FilterHandler struct {
	uc *usecase.FilterUseCase
}

// NewFilterHandler construye el handler.
func NewFilterHandler(uc *usecase.FilterUseCase) *FilterHandler {
	return &FilterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear filtro
// @Tags         filters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFilterRequest  true  "Datos del filtro"
// @Success      201   {object}  dto.FilterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/filters [post]
func (h *FilterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFilterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar filtros
// @Tags         filters
// @Security     Bearer
// @Produce      json
// @Param        categoryId  query  string  false  "Solo los propios de esta categoría"
// @Param        all         query  bool    false  "Incluir inactivos"
// @Success      200  {object}  dto.FilterListResponse
// @Router       /api/filters [get]
func (h *FilterHandler) List(c *fiber.Ctx) error {
	all := c.QueryBool("all", false) || c.Query("all") == "1"
	out, err := h.uc.List(c.UserContext(), c.Query("categoryId"), all)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Esquema de atributos de una categoría (incluye heredados)
// @Tags         filters
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.FilterListResponse
// @Router       /api/filters/by-category/{categoryId} [get]
func (h *FilterHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener filtro por ID
// @Tags         filters
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del filtro"
// @Success      200  {object}  dto.FilterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/filters/{id} [get]
func (h *FilterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "filtro")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar filtro
// @Tags         filters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del filtro"
// @Param        body  body  dto.UpdateFilterRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FilterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/filters/{id} [put]
func (h *FilterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFilterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "filtro")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar filtro
// @Tags         filters
// @Security     Bearer
// @Param        id   path  string  true  "ID del filtro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/filters/{id} [delete]
func (h *FilterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
