package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/application/usecase"
	"github.com/chubrika/wineo-admin/internal/infrastructure/cache"
	"github.com/chubrika/wineo-admin/internal/infrastructure/postgres"
	httpRouter "github.com/chubrika/wineo-admin/internal/interfaces/http"
	"github.com/chubrika/wineo-admin/pkg/config"
	"github.com/chubrika/wineo-admin/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	filterRepo := postgres.NewFilterRepository(pool)
	regionRepo := postgres.NewRegionRepository(pool)
	cityRepo := postgres.NewCityRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin REDIS_ADDR las lecturas van directo a PostgreSQL.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no responde, se usará lectura directa hasta que vuelva")
		}
		cancel()
	}
	catalogCache := cache.NewCatalogCache(listingdraft.Catalog{
		Categories: categoryRepo,
		Regions:    regionRepo,
		Filters:    filterRepo,
		Cities:     cityRepo,
	}, rdb, cache.Config{TTL: cfg.Redis.TTL}, log.Zerolog())

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner, catalogCache)
	filterUC := usecase.NewFilterUseCase(filterRepo, categoryRepo, catalogCache)
	geographyUC := usecase.NewGeographyUseCase(regionRepo, cityRepo, catalogCache)
	listingUC := usecase.NewListingUseCase(listingRepo)
	draftUC := usecase.NewDraftUseCase(
		listingdraft.NewLoader(catalogCache.Catalog()),
		listingRepo,
		usecase.DraftConfig{
			IdleTTL:       cfg.Drafts.IdleTTL,
			LookupTimeout: cfg.Drafts.LookupTimeout,
			SettleTimeout: cfg.Drafts.SettleTimeout,
		},
		log.Zerolog(),
	)
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		draftUC.RunJanitor(ctx, cfg.Drafts.SweepInterval)
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Drafts.SettleTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Wineo Admin API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no generado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		FilterUC:    filterUC,
		GeographyUC: geographyUC,
		ListingUC:   listingUC,
		DraftUC:     draftUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()
	<-janitorDone

	log.Info().Msg("aplicación detenida")
}
