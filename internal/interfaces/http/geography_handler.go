package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
)

// GeographyHandler maneja regiones y ciudades.
type GeographyHandler struct {
	uc *usecase.GeographyUseCase
}

// NewGeographyHandler construye el handler.
func NewGeographyHandler(uc *usecase.GeographyUseCase) *GeographyHandler {
	return &GeographyHandler{uc: uc}
}

// CreateRegion godoc
// @Summary      Crear región
// @Tags         geography
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRegionRequest  true  "Datos de la región"
// @Success      201   {object}  dto.RegionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/regions [post]
func (h *GeographyHandler) CreateRegion(c *fiber.Ctx) error {
	var in dto.CreateRegionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRegion(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRegions godoc
// @Summary      Listar regiones
// @Tags         geography
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RegionListResponse
// @Router       /api/regions [get]
func (h *GeographyHandler) ListRegions(c *fiber.Ctx) error {
	out, err := h.uc.ListRegions(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRegion godoc
// @Summary      Actualizar región
// @Tags         geography
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la región"
// @Param        body  body  dto.UpdateRegionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RegionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/regions/{id} [put]
func (h *GeographyHandler) UpdateRegion(c *fiber.Ctx) error {
	var in dto.UpdateRegionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateRegion(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "región")
	}
	return c.JSON(out)
}

// DeleteRegion godoc
// @Summary      Eliminar región (sin ciudades)
// @Tags         geography
// @Security     Bearer
// @Param        id   path  string  true  "ID de la región"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/regions/{id} [delete]
func (h *GeographyHandler) DeleteRegion(c *fiber.Ctx) error {
	if err := h.uc.DeleteRegion(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCity godoc
// @Summary      Crear ciudad
// @Tags         geography
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCityRequest  true  "Datos de la ciudad"
// @Success      201   {object}  dto.CityResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cities [post]
func (h *GeographyHandler) CreateCity(c *fiber.Ctx) error {
	var in dto.CreateCityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCity(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCities godoc
// @Summary      Listar ciudades
// @Tags         geography
// @Security     Bearer
// @Produce      json
// @Param        regionId  query  string  false  "Filtrar por región"
// @Success      200  {object}  dto.CityListResponse
// @Router       /api/cities [get]
func (h *GeographyHandler) ListCities(c *fiber.Ctx) error {
	out, err := h.uc.ListCities(c.UserContext(), c.Query("regionId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCity godoc
// @Summary      Actualizar ciudad
// @Tags         geography
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ciudad"
// @Param        body  body  dto.UpdateCityRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cities/{id} [put]
func (h *GeographyHandler) UpdateCity(c *fiber.Ctx) error {
	var in dto.UpdateCityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCity(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "ciudad")
	}
	return c.JSON(out)
}

// DeleteCity godoc
// @Summary      Eliminar ciudad
// @Tags         geography
// @Security     Bearer
// @Param        id   path  string  true  "ID de la ciudad"
// @Success      204
// @Router       /api/cities/{id} [delete]
func (h *GeographyHandler) DeleteCity(c *fiber.Ctx) error {
	if err := h.uc.DeleteCity(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
