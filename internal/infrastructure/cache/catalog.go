package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// Config configuración del caché del catálogo.
type Config struct {
	TTL       time.Duration // vigencia de cada lista (por defecto 5 min)
	KeyPrefix string        // prefijo de claves (por defecto "wineo:")
}

// CatalogCache cachea en Redis las lecturas del catálogo que consumen los borradores
// (categorías, filtros por categoría, regiones y ciudades por región).
// Si Redis falla se lee directo de la fuente; con cliente nil no cachea.
//
// Cada grupo lleva una generación que sube en cada invalidación. Una lectura que empezó
// antes de una invalidación de este proceso no se guarda (y se borra si llegó a guardarse).
// Las escrituras hechas desde otra instancia solo quedan acotadas por el TTL.
type CatalogCache struct {
	src listingdraft.Catalog
	rdb *redis.Client
	cfg Config
	log zerolog.Logger

	taxonomyGen  atomic.Uint64
	geographyGen atomic.Uint64
}

// NewCatalogCache construye el caché sobre la fuente dada.
func NewCatalogCache(src listingdraft.Catalog, rdb *redis.Client, cfg Config, log zerolog.Logger) *CatalogCache {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "wineo:"
	}
	return &CatalogCache{src: src, rdb: rdb, cfg: cfg, log: log.With().Str("component", "catalog_cache").Logger()}
}

func (c *CatalogCache) keyCategories() string { return c.cfg.KeyPrefix + "taxonomy:categories" }
func (c *CatalogCache) keyFilters() string    { return c.cfg.KeyPrefix + "taxonomy:filters" }
func (c *CatalogCache) keyRegions() string    { return c.cfg.KeyPrefix + "geo:regions" }
func (c *CatalogCache) keyCities() string     { return c.cfg.KeyPrefix + "geo:cities" }

// Catalog devuelve los puertos de lectura respaldados por el caché.
func (c *CatalogCache) Catalog() listingdraft.Catalog {
	return listingdraft.Catalog{
		Categories: categories{c},
		Regions:    regions{c},
		Filters:    filters{c},
		Cities:     cities{c},
	}
}

// InvalidateTaxonomy descarta categorías y filtros cacheados.
func (c *CatalogCache) InvalidateTaxonomy(ctx context.Context) {
	c.taxonomyGen.Add(1)
	c.del(ctx, c.keyCategories(), c.keyFilters())
}

// InvalidateGeography descarta regiones y ciudades cacheadas.
func (c *CatalogCache) InvalidateGeography(ctx context.Context) {
	c.geographyGen.Add(1)
	c.del(ctx, c.keyRegions(), c.keyCities())
}

func (c *CatalogCache) del(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudo invalidar el caché")
	}
}

// cached lee key (o el campo del hash si field no es vacío); en un fallo consulta la fuente y
// guarda el resultado salvo que gen haya cambiado durante la consulta.
func cached[T any](ctx context.Context, c *CatalogCache, gen *atomic.Uint64, key, field string, fetch func() (T, error)) (T, error) {
	if c.rdb == nil {
		return fetch()
	}
	start := gen.Load()
	var (
		raw string
		err error
	)
	if field == "" {
		raw, err = c.rdb.Get(ctx, key).Result()
	} else {
		raw, err = c.rdb.HGet(ctx, key, field).Result()
	}
	if err == nil {
		var out T
		if uerr := json.Unmarshal([]byte(raw), &out); uerr == nil {
			return out, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta, se recarga")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, lectura directa")
	}

	out, err := fetch()
	if err != nil {
		return out, err
	}
	if gen.Load() != start {
		c.log.Debug().Str("key", key).Msg("lectura superada por una invalidación, no se guarda")
		return out, nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if field == "" {
		err = c.rdb.Set(ctx, key, data, c.cfg.TTL).Err()
	} else {
		pipe := c.rdb.TxPipeline()
		pipe.HSet(ctx, key, field, data)
		pipe.Expire(ctx, key, c.cfg.TTL)
		_, err = pipe.Exec(ctx)
	}
	if err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("no se pudo guardar en caché")
		return out, nil
	}
	if gen.Load() != start {
		// la invalidación pudo borrar antes de este Set
		c.del(ctx, key)
	}
	return out, nil
}

type categories struct{ c *CatalogCache }

func (a categories) List(ctx context.Context) ([]*entity.Category, error) {
	return cached(ctx, a.c, &a.c.taxonomyGen, a.c.keyCategories(), "", func() ([]*entity.Category, error) {
		return a.c.src.Categories.List(ctx)
	})
}

type filters struct{ c *CatalogCache }

func (a filters) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error) {
	return cached(ctx, a.c, &a.c.taxonomyGen, a.c.keyFilters(), categoryID, func() ([]*entity.Filter, error) {
		return a.c.src.Filters.ListByCategory(ctx, categoryID)
	})
}

type regions struct{ c *CatalogCache }

func (a regions) List(ctx context.Context) ([]*entity.Region, error) {
	return cached(ctx, a.c, &a.c.geographyGen, a.c.keyRegions(), "", func() ([]*entity.Region, error) {
		return a.c.src.Regions.List(ctx)
	})
}

type cities struct{ c *CatalogCache }

func (a cities) List(ctx context.Context, regionID string) ([]*entity.City, error) {
	return cached(ctx, a.c, &a.c.geographyGen, a.c.keyCities(), regionID, func() ([]*entity.City, error) {
		return a.c.src.Cities.List(ctx, regionID)
	})
}
