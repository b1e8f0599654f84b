// Package listingdraft reconcilia el borrador editable de un anuncio: selección de
// categoría y esquema de atributos, cascada región -> ciudad, reconstrucción desde un
// anuncio persistido y serialización al payload de persistencia.
package listingdraft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chubrika/wineo-admin/internal/application/location"
	"github.com/chubrika/wineo-admin/internal/application/schema"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// Errores de edición del borrador.
var (
	ErrPriceFrozen        = errors.New("precio y moneda están congelados mientras el precio es negociable")
	ErrRentPeriodForSale  = errors.New("el periodo de alquiler solo aplica a anuncios de alquiler")
	ErrUnknownCategory    = errors.New("categoría desconocida")
	ErrUnknownRegion      = errors.New("región desconocida")
	ErrSchemaPending      = errors.New("el esquema de atributos de la categoría aún no se ha resuelto")
	ErrInvalidListingType = errors.New("tipo de anuncio inválido")
	ErrInvalidPriceType   = errors.New("tipo de precio inválido")
	ErrInvalidCurrency    = errors.New("moneda inválida")
	ErrInvalidRentPeriod  = errors.New("periodo de alquiler inválido")
	ErrInvalidCondition   = errors.New("estado del equipo inválido")
	ErrNegativePrice      = errors.New("el precio no puede ser negativo")
)

// ResolutionStatus estado de una consulta dependiente (esquema o ciudades).
type ResolutionStatus string

const (
	ResolutionNone        ResolutionStatus = "none"
	ResolutionPending     ResolutionStatus = "pending"
	ResolutionResolved    ResolutionStatus = "resolved"
	ResolutionUnavailable ResolutionStatus = "unavailable"
)

// Completed indica si la consulta terminó (con o sin datos).
func (s ResolutionStatus) Completed() bool {
	return s == ResolutionResolved || s == ResolutionUnavailable
}

// SchemaTicket identifica una consulta de esquema en vuelo.
type SchemaTicket struct {
	CategoryID string
	Seq        uint64
}

// Draft borrador editable de un anuncio. No es seguro para uso concurrente:
// Session serializa todas las mutaciones.
type Draft struct {
	ListingID      string // vacío en alta
	Title          string
	Slug           string
	Description    string
	Type           entity.ListingType
	CategoryID     string
	Category       entity.ListingCategory
	Price          *decimal.Decimal
	Currency       entity.Currency
	PriceType      entity.PriceType
	RentPeriod     entity.RentPeriod
	Specifications entity.Specifications
	Images         []string
	Thumbnail      string
	SEOTitle       string
	SEODescription string
	Status         entity.ListingStatus
	Promotion      entity.Promotion

	categories   []entity.Category
	regions      []entity.Region
	regionLabel  string
	schema       schema.Schema
	schemaStatus ResolutionStatus
	schemaSeq    uint64
	attributes   map[string]entity.AttributeValue
	location     location.Cascade
	citiesStatus ResolutionStatus
}

// New crea el borrador vacío de un anuncio nuevo con los valores por defecto del formulario.
func New(categories []entity.Category, regions []entity.Region) *Draft {
	return &Draft{
		Type:         entity.ListingSell,
		Currency:     entity.CurrencyGEL,
		PriceType:    entity.PriceFixed,
		categories:   categories,
		regions:      regions,
		schemaStatus: ResolutionNone,
		citiesStatus: ResolutionNone,
		attributes:   make(map[string]entity.AttributeValue),
	}
}

// SetType cambia venta/alquiler. Pasar a venta borra el periodo de alquiler;
// pasar a alquiler lo vuelve obligatorio (ver Validate).
func (d *Draft) SetType(t entity.ListingType) error {
	switch t {
	case entity.ListingSell:
		d.RentPeriod = ""
	case entity.ListingRent:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidListingType, t)
	}
	d.Type = t
	return nil
}

// SetRentPeriod fija el periodo; solo permitido en alquiler.
func (d *Draft) SetRentPeriod(p entity.RentPeriod) error {
	if p == "" {
		d.RentPeriod = ""
		return nil
	}
	if d.Type != entity.ListingRent {
		return ErrRentPeriodForSale
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRentPeriod, p)
	}
	d.RentPeriod = p
	return nil
}

// SetPriceType alterna fijo/negociable. Negociable congela precio y moneda sin borrarlos.
func (d *Draft) SetPriceType(t entity.PriceType) error {
	if t != entity.PriceFixed && t != entity.PriceNegotiable {
		return fmt.Errorf("%w: %q", ErrInvalidPriceType, t)
	}
	d.PriceType = t
	return nil
}

// PriceEditable indica si precio y moneda pueden editarse.
func (d *Draft) PriceEditable() bool {
	return d.PriceType == entity.PriceFixed
}

// SetPrice fija el precio (nil lo borra). Rechazado si está congelado.
func (d *Draft) SetPrice(p *decimal.Decimal) error {
	if !d.PriceEditable() {
		return ErrPriceFrozen
	}
	if p != nil && p.IsNegative() {
		return ErrNegativePrice
	}
	if p == nil {
		d.Price = nil
		return nil
	}
	v := *p
	d.Price = &v
	return nil
}

// SetCurrency fija la moneda. Rechazado si está congelada.
func (d *Draft) SetCurrency(c entity.Currency) error {
	if !d.PriceEditable() {
		return ErrPriceFrozen
	}
	if c != "" && !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, c)
	}
	d.Currency = c
	return nil
}

// SetSpecifications reemplaza los datos técnicos.
func (d *Draft) SetSpecifications(s entity.Specifications) error {
	if s.Condition != "" && s.Condition != entity.ConditionNew && s.Condition != entity.ConditionUsed {
		return fmt.Errorf("%w: %q", ErrInvalidCondition, s.Condition)
	}
	d.Specifications = s
	return nil
}

// SetImages reemplaza la lista ordenada de URLs. Acepta también una sola entrada con
// una URL por línea, como el textarea del formulario.
func (d *Draft) SetImages(images []string) {
	var out []string
	for _, block := range images {
		for _, line := range strings.Split(block, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				out = append(out, s)
			}
		}
	}
	d.Images = out
}

// SelectCategory cambia la categoría. Descarta el esquema y todos los valores de atributos
// y devuelve el ticket de la nueva consulta (fetch=false para categoría vacía).
func (d *Draft) SelectCategory(categoryID string) (t SchemaTicket, fetch bool, err error) {
	var snap entity.ListingCategory
	if categoryID != "" {
		c, ok := d.lookupCategory(categoryID)
		if !ok {
			return SchemaTicket{}, false, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
		}
		snap = entity.ListingCategory{Name: c.Name, Slug: c.Slug}
	}
	d.schemaSeq++
	d.CategoryID = categoryID
	d.Category = snap
	d.schema = schema.Schema{}
	d.attributes = make(map[string]entity.AttributeValue)
	if categoryID == "" {
		d.schemaStatus = ResolutionNone
		return SchemaTicket{Seq: d.schemaSeq}, false, nil
	}
	d.schemaStatus = ResolutionPending
	return SchemaTicket{CategoryID: categoryID, Seq: d.schemaSeq}, true, nil
}

// ApplySchema instala el resultado de la consulta t; false si quedó obsoleta.
// Un error deja el esquema vacío y marca los filtros como no disponibles.
func (d *Draft) ApplySchema(t SchemaTicket, s schema.Schema, err error) bool {
	if d.schemaStatus != ResolutionPending || t.Seq != d.schemaSeq || t.CategoryID != d.CategoryID {
		return false
	}
	if err != nil {
		d.schema = schema.Schema{}
		d.schemaStatus = ResolutionUnavailable
		return true
	}
	d.schema = s
	d.schemaStatus = ResolutionResolved
	return true
}

// SetAttribute fija el valor de un filtro del esquema desde la entrada del operador.
// Un valor vacío elimina la entrada.
func (d *Draft) SetAttribute(filterID, raw string) error {
	if d.schemaStatus == ResolutionPending {
		return ErrSchemaPending
	}
	v, err := d.schema.Parse(filterID, raw)
	if err != nil {
		return err
	}
	if v.IsEmpty() {
		delete(d.attributes, filterID)
		return nil
	}
	d.attributes[filterID] = v
	return nil
}

// Attribute devuelve el valor actual de un filtro.
func (d *Draft) Attribute(filterID string) (entity.AttributeValue, bool) {
	v, ok := d.attributes[filterID]
	return v, ok
}

// Attributes valores no vacíos en el orden del esquema.
func (d *Draft) Attributes() []entity.Attribute {
	var out []entity.Attribute
	for _, f := range d.schema.Filters {
		if v, ok := d.attributes[f.ID]; ok && !v.IsEmpty() {
			out = append(out, entity.Attribute{FilterID: f.ID, Value: v})
		}
	}
	return out
}

// SelectRegion cambia la región y devuelve el ticket de la consulta de ciudades.
func (d *Draft) SelectRegion(regionID string) (t location.Ticket, fetch bool, err error) {
	label := ""
	if regionID != "" {
		r, ok := d.lookupRegion(regionID)
		if !ok {
			return location.Ticket{}, false, fmt.Errorf("%w: %s", ErrUnknownRegion, regionID)
		}
		label = r.Label
	}
	d.regionLabel = label
	t, fetch = d.location.Select(regionID)
	if fetch {
		d.citiesStatus = ResolutionPending
	} else {
		d.citiesStatus = ResolutionNone
	}
	return t, fetch, nil
}

// ApplyCities instala el resultado de la consulta de ciudades; false si quedó obsoleta.
func (d *Draft) ApplyCities(t location.Ticket, cities []entity.City, err error) bool {
	if !d.location.Apply(t, cities, err) {
		return false
	}
	if err != nil {
		d.citiesStatus = ResolutionUnavailable
	} else {
		d.citiesStatus = ResolutionResolved
	}
	return true
}

// SelectCity elige una ciudad del conjunto vigente de la región.
func (d *Draft) SelectCity(cityID string) error {
	return d.location.SetCity(cityID)
}

// RegionID región seleccionada.
func (d *Draft) RegionID() string { return d.location.RegionID() }

// CityID ciudad seleccionada.
func (d *Draft) CityID() string { return d.location.CityID() }

// Cities opciones de ciudad vigentes.
func (d *Draft) Cities() []entity.City { return d.location.Cities() }

// Location instantánea de etiquetas {region, city}.
func (d *Draft) Location() entity.ListingLocation {
	loc := entity.ListingLocation{}
	if d.location.RegionID() != "" {
		loc.Region = d.regionLabel
	}
	if c, ok := d.location.City(); ok {
		loc.City = c.Label
	}
	return loc
}

// Schema esquema de atributos vigente.
func (d *Draft) Schema() schema.Schema { return d.schema }

// SchemaStatus estado de la consulta de esquema.
func (d *Draft) SchemaStatus() ResolutionStatus { return d.schemaStatus }

// CitiesStatus estado de la consulta de ciudades.
func (d *Draft) CitiesStatus() ResolutionStatus { return d.citiesStatus }

// CategoryOptions categorías disponibles para elegir.
func (d *Draft) CategoryOptions() []entity.Category { return d.categories }

// RegionOptions regiones disponibles para elegir.
func (d *Draft) RegionOptions() []entity.Region { return d.regions }

func (d *Draft) lookupCategory(id string) (entity.Category, bool) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Category{}, false
}

func (d *Draft) lookupRegion(id string) (entity.Region, bool) {
	for _, r := range d.regions {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Region{}, false
}
