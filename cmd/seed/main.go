// seed pobla la base con una taxonomía inicial de equipos y la geografía de regiones vinícolas.
//
// Uso: go run ./cmd/seed [ruta/geografia.xml]
// Sin archivo se cargan las regiones por defecto. Es idempotente: lo existente se conserva.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/infrastructure/postgres"
	"github.com/chubrika/wineo-admin/pkg/config"
	"github.com/chubrika/wineo-admin/pkg/jwt"
	"github.com/chubrika/wineo-admin/pkg/logger"
	"github.com/chubrika/wineo-admin/pkg/slug"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	geo := defaultGeography()
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir archivo de geografía")
		}
		geo, err = parseGeography(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer archivo de geografía")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	regionRepo := postgres.NewRegionRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, postgres.NewTxRunner(pool), nil)
	filterUC := usecase.NewFilterUseCase(postgres.NewFilterRepository(pool), categoryRepo, nil)
	geographyUC := usecase.NewGeographyUseCase(regionRepo, postgres.NewCityRepository(pool), nil)

	nCat, nFil, err := seedTaxonomy(ctx, categoryUC, filterUC, categoryRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar taxonomía")
	}
	nReg, nCity, err := seedGeography(ctx, geographyUC, geo)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar geografía")
	}
	log.Info().Int("categories", nCat).Int("filters", nFil).Int("regions", nReg).Int("cities", nCity).Msg("seed completado")

	if cfg.App.Env == "development" && cfg.JWT.Secret != "" {
		tok, err := jwt.Generate(cfg.JWT.Secret, "seed-admin", jwt.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err == nil {
			fmt.Printf("Token admin de desarrollo:\n%s\n", tok)
		}
	}
}

type seedCategory struct {
	name    string
	parent  string
	filters []dto.CreateFilterRequest
}

var taxonomy = []seedCategory{
	{name: "Winery Equipment", filters: []dto.CreateFilterRequest{
		{Name: "Condition", Type: "select", Options: []string{"new", "used", "refurbished"}, ApplyToChildren: true, SortOrder: 1},
	}},
	{name: "Pumps", parent: "Winery Equipment", filters: []dto.CreateFilterRequest{
		{Name: "Power", Type: "number", Unit: "kW", IsRequired: true, SortOrder: 10},
		{Name: "Flow Rate", Type: "range", Unit: "L/h", SortOrder: 20},
		{Name: "Food Grade", Type: "checkbox", SortOrder: 30},
	}},
	{name: "Barrels", parent: "Winery Equipment", filters: []dto.CreateFilterRequest{
		{Name: "Capacity", Type: "number", Unit: "L", IsRequired: true, SortOrder: 10},
		{Name: "Wood", Type: "select", Options: []string{"french oak", "american oak", "georgian oak"}, SortOrder: 20},
	}},
	{name: "Qvevri", parent: "Winery Equipment", filters: []dto.CreateFilterRequest{
		{Name: "Capacity", Type: "number", Unit: "L", IsRequired: true, SortOrder: 10},
		{Name: "Maker", Type: "text", SortOrder: 20},
	}},
	{name: "Vineyard Tools"},
}

func seedTaxonomy(ctx context.Context, categories *usecase.CategoryUseCase, filters *usecase.FilterUseCase, repo *postgres.CategoryRepo) (int, int, error) {
	ids := map[string]string{}
	nCat, nFil := 0, 0
	for _, sc := range taxonomy {
		out, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: sc.name, ParentID: ids[sc.parent]})
		switch {
		case err == nil:
			ids[sc.name] = out.ID
			nCat++
		case errors.Is(err, domain.ErrDuplicate):
			existing, gerr := repo.GetBySlug(ctx, slug.Make(sc.name))
			if gerr != nil || existing == nil {
				return nCat, nFil, fmt.Errorf("categoría %s: %w", sc.name, err)
			}
			ids[sc.name] = existing.ID
		default:
			return nCat, nFil, fmt.Errorf("categoría %s: %w", sc.name, err)
		}
		for _, f := range sc.filters {
			f.CategoryID = ids[sc.name]
			if _, err := filters.Create(ctx, f); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				return nCat, nFil, fmt.Errorf("filtro %s: %w", f.Name, err)
			}
			nFil++
		}
	}
	return nCat, nFil, nil
}

func seedGeography(ctx context.Context, geo *usecase.GeographyUseCase, regions []geoRegion) (int, int, error) {
	existing, err := geo.ListRegions(ctx)
	if err != nil {
		return 0, 0, err
	}
	bySlug := map[string]string{}
	for _, r := range existing.Items {
		bySlug[r.Slug] = r.ID
	}
	nReg, nCity := 0, 0
	for _, r := range regions {
		s := slug.OrMake(r.Slug, r.Label)
		id, ok := bySlug[s]
		if !ok {
			out, err := geo.CreateRegion(ctx, dto.CreateRegionRequest{Label: r.Label, Slug: s})
			if err != nil {
				return nReg, nCity, fmt.Errorf("región %s: %w", r.Label, err)
			}
			id = out.ID
			nReg++
		}
		for _, c := range r.Cities {
			_, err := geo.CreateCity(ctx, dto.CreateCityRequest{Label: c.Label, Slug: c.Slug, RegionID: id})
			if err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				return nReg, nCity, fmt.Errorf("ciudad %s: %w", c.Label, err)
			}
			nCity++
		}
	}
	return nReg, nCity, nil
}
