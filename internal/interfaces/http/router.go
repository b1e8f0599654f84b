package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chubrika/wineo-admin/internal/application/usecase"
	"github.com/chubrika/wineo-admin/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	FilterUC    *usecase.FilterUseCase
	GeographyUC *usecase.GeographyUseCase
	ListingUC   *usecase.ListingUseCase
	DraftUC     *usecase.DraftUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo /api exige Bearer Token con rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))

	// Taxonomía
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	filters := api.Group("/filters")
	filterHandler := NewFilterHandler(deps.FilterUC)
	filters.Get("/", filterHandler.List)
	filters.Post("/", filterHandler.Create)
	filters.Get("/by-category/:categoryId", filterHandler.ListByCategory)
	filters.Get("/:id", filterHandler.GetByID)
	filters.Put("/:id", filterHandler.Update)
	filters.Delete("/:id", filterHandler.Delete)

	// Geografía
	geoHandler := NewGeographyHandler(deps.GeographyUC)
	regions := api.Group("/regions")
	regions.Get("/", geoHandler.ListRegions)
	regions.Post("/", geoHandler.CreateRegion)
	regions.Put("/:id", geoHandler.UpdateRegion)
	regions.Delete("/:id", geoHandler.DeleteRegion)

	cities := api.Group("/cities")
	cities.Get("/", geoHandler.ListCities)
	cities.Post("/", geoHandler.CreateCity)
	cities.Put("/:id", geoHandler.UpdateCity)
	cities.Delete("/:id", geoHandler.DeleteCity)

	// Anuncios y editor
	listingHandler := NewListingHandler(deps.ListingUC)
	api.Get("/listings/:id", listingHandler.GetByID)
	api.Delete("/listings/:id", listingHandler.Delete)

	drafts := api.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Post("/:id/events", draftHandler.Apply)
	drafts.Post("/:id/submit", draftHandler.Submit)
	drafts.Post("/:id/notices/dismiss", draftHandler.DismissNotices)
	drafts.Delete("/:id", draftHandler.Discard)
}
