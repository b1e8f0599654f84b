// Package location resuelve la cascada región -> ciudad de un anuncio.
package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

var (
	// ErrCitiesUnavailable la consulta de ciudades falló.
	ErrCitiesUnavailable = errors.New("ciudades no disponibles")
	// ErrCityNotInRegion la ciudad no pertenece al conjunto de la región actual.
	ErrCityNotInRegion = errors.New("la ciudad no pertenece a la región seleccionada")
	// ErrCitiesPending las ciudades de la región aún no se han resuelto.
	ErrCitiesPending = errors.New("ciudades de la región pendientes de carga")
)

// CityLister puerto de lectura de ciudades por región.
type CityLister interface {
	List(ctx context.Context, regionID string) ([]*entity.City, error)
}

// Resolver obtiene las ciudades de una región.
type Resolver struct {
	cities CityLister
}

// NewResolver construye el resolver sobre el puerto de ciudades.
func NewResolver(cities CityLister) *Resolver {
	return &Resolver{cities: cities}
}

// Resolve devuelve solo las ciudades cuyo RegionID coincide con regionID.
// Una región vacía devuelve el conjunto vacío sin consultar.
func (r *Resolver) Resolve(ctx context.Context, regionID string) ([]entity.City, error) {
	if regionID == "" {
		return nil, nil
	}
	list, err := r.cities.List(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCitiesUnavailable, err)
	}
	out := make([]entity.City, 0, len(list))
	for _, c := range list {
		if c != nil && c.RegionID == regionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Ticket identifica una consulta en vuelo: la región que la originó y su secuencia.
type Ticket struct {
	RegionID string
	Seq      uint64
}

// Cascade mantiene la región seleccionada, la ciudad elegida y el conjunto de ciudades
// válido. Solo se aplica el resultado de la última consulta emitida.
// No es seguro para uso concurrente; el dueño (la sesión del borrador) serializa el acceso.
type Cascade struct {
	regionID string
	cityID   string
	cities   []entity.City
	seq      uint64
	pending  bool
	resolved bool
}

// Select cambia la región. Descarta el conjunto de ciudades y devuelve el ticket de la
// nueva consulta; fetch es false cuando la región es vacía (ciudad y opciones se limpian).
func (c *Cascade) Select(regionID string) (t Ticket, fetch bool) {
	c.seq++
	c.regionID = regionID
	c.cities = nil
	c.resolved = false
	if regionID == "" {
		c.cityID = ""
		c.pending = false
		return Ticket{Seq: c.seq}, false
	}
	c.pending = true
	return Ticket{RegionID: regionID, Seq: c.seq}, true
}

// Current indica si el ticket corresponde a la selección vigente.
func (c *Cascade) Current(t Ticket) bool {
	return c.pending && t.Seq == c.seq && t.RegionID == c.regionID
}

// Apply instala el resultado de la consulta t. Devuelve false si t quedó obsoleto.
// Con error el conjunto queda vacío y la ciudad se limpia; si no, la ciudad se conserva
// solo si pertenece al nuevo conjunto.
func (c *Cascade) Apply(t Ticket, cities []entity.City, err error) bool {
	if !c.Current(t) {
		return false
	}
	c.pending = false
	c.resolved = true
	if err != nil {
		c.cities = nil
		c.cityID = ""
		return true
	}
	c.cities = cities
	if !c.contains(c.cityID) {
		c.cityID = ""
	}
	return true
}

// Restore fija un estado ya resuelto (reconstrucción de un anuncio existente).
func (c *Cascade) Restore(regionID string, cities []entity.City, cityID string) {
	c.seq++
	c.regionID = regionID
	c.cities = cities
	c.pending = false
	c.resolved = regionID != ""
	c.cityID = cityID
	if !c.contains(cityID) {
		c.cityID = ""
	}
}

// SetCity elige una ciudad del conjunto vigente ("" la deselecciona).
func (c *Cascade) SetCity(cityID string) error {
	if cityID == "" {
		c.cityID = ""
		return nil
	}
	if c.pending {
		return ErrCitiesPending
	}
	if !c.contains(cityID) {
		return fmt.Errorf("%w: %s", ErrCityNotInRegion, cityID)
	}
	c.cityID = cityID
	return nil
}

func (c *Cascade) contains(cityID string) bool {
	if cityID == "" {
		return false
	}
	for _, city := range c.cities {
		if city.ID == cityID {
			return true
		}
	}
	return false
}

// RegionID región seleccionada.
func (c *Cascade) RegionID() string { return c.regionID }

// CityID ciudad seleccionada.
func (c *Cascade) CityID() string { return c.cityID }

// City devuelve la ciudad seleccionada.
func (c *Cascade) City() (entity.City, bool) {
	for _, city := range c.cities {
		if city.ID == c.cityID && c.cityID != "" {
			return city, true
		}
	}
	return entity.City{}, false
}

// Cities conjunto vigente de ciudades (copia).
func (c *Cascade) Cities() []entity.City {
	out := make([]entity.City, len(c.cities))
	copy(out, c.cities)
	return out
}

// Pending indica si hay una consulta en vuelo para la región actual.
func (c *Cascade) Pending() bool { return c.pending }

// Resolved indica si la consulta de la región actual terminó (con o sin error).
func (c *Cascade) Resolved() bool { return c.resolved }
