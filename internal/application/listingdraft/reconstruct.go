package listingdraft

import (
	"context"
	"errors"
	"strings"

	"github.com/chubrika/wineo-admin/internal/application/location"
	"github.com/chubrika/wineo-admin/internal/application/schema"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// NoticeKind tipo de aviso no fatal mostrado al operador.
type NoticeKind string

const (
	NoticeCategoriesUnavailable NoticeKind = "categories_unavailable"
	NoticeRegionsUnavailable    NoticeKind = "regions_unavailable"
	NoticeFiltersUnavailable    NoticeKind = "filters_unavailable"
	NoticeCitiesUnavailable     NoticeKind = "cities_unavailable"
	NoticeCategoryNotFound      NoticeKind = "category_not_found"
	NoticeRegionNotFound        NoticeKind = "region_not_found"
	NoticeCityNotFound          NoticeKind = "city_not_found"
	NoticeAttributeDropped      NoticeKind = "attribute_dropped"
)

// Notice aviso descartable (errores de resolución y reconstrucción parcial).
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Loader carga las opciones del formulario y reconstruye borradores a partir del catálogo.
type Loader struct {
	catalog Catalog
	schemas *schema.Resolver
	places  *location.Resolver
}

// NewLoader construye el cargador sobre el catálogo.
func NewLoader(catalog Catalog) *Loader {
	return &Loader{
		catalog: catalog,
		schemas: schema.NewResolver(catalog.Filters),
		places:  location.NewResolver(catalog.Cities),
	}
}

// Schemas resolver de esquemas de atributos.
func (l *Loader) Schemas() *schema.Resolver { return l.schemas }

// Places resolver de ciudades por región.
func (l *Loader) Places() *location.Resolver { return l.places }

// Options carga categorías y regiones. Un fallo deja la lista vacía y agrega un aviso.
func (l *Loader) Options(ctx context.Context) ([]entity.Category, []entity.Region, []Notice) {
	var notices []Notice
	var categories []entity.Category
	if list, err := l.catalog.Categories.List(ctx); err != nil {
		notices = append(notices, Notice{Kind: NoticeCategoriesUnavailable, Message: "no se pudieron cargar las categorías: " + err.Error()})
	} else {
		for _, c := range list {
			if c != nil {
				categories = append(categories, *c)
			}
		}
	}
	var regions []entity.Region
	if list, err := l.catalog.Regions.List(ctx); err != nil {
		notices = append(notices, Notice{Kind: NoticeRegionsUnavailable, Message: "no se pudieron cargar las regiones: " + err.Error()})
	} else {
		for _, r := range list {
			if r != nil {
				regions = append(regions, *r)
			}
		}
	}
	return categories, regions, notices
}

// NewDraft crea el borrador de un anuncio nuevo con las opciones cargadas.
func (l *Loader) NewDraft(ctx context.Context) (*Draft, []Notice) {
	categories, regions, notices := l.Options(ctx)
	return New(categories, regions), notices
}

// Reconstruct arma el borrador editable de un anuncio persistido. Cada paso espera al
// anterior: categorías -> categoryId, regiones -> regionId (por etiqueta), ciudades de
// esa región -> cityId (por etiqueta), esquema de la categoría -> valores de atributos.
// Una búsqueda sin coincidencia deja el campo sin asignar y la reconstrucción continúa.
func (l *Loader) Reconstruct(ctx context.Context, listing *entity.Listing) (*Draft, []Notice) {
	categories, regions, notices := l.Options(ctx)
	d := New(categories, regions)

	d.ListingID = listing.ID
	d.Title = listing.Title
	d.Slug = listing.Slug
	d.Description = listing.Description
	d.Type = listing.Type
	if d.Type != entity.ListingRent {
		d.Type = entity.ListingSell
	}
	price := listing.Price
	d.Price = &price
	d.Currency = listing.Currency
	d.PriceType = listing.PriceType
	if d.PriceType != entity.PriceNegotiable {
		d.PriceType = entity.PriceFixed
	}
	if d.Type == entity.ListingRent {
		d.RentPeriod = listing.RentPeriod
	}
	d.Specifications = listing.Specifications
	d.Images = append([]string(nil), listing.Images...)
	d.Thumbnail = listing.Thumbnail
	d.SEOTitle = listing.SEOTitle
	d.SEODescription = listing.SEODescription
	d.Status = listing.Status
	d.Promotion = listing.Promotion

	// Categoría: por ID si sigue existiendo, si no por slug.
	if c, ok := matchCategory(categories, listing); ok {
		d.CategoryID = c.ID
		d.Category = entity.ListingCategory{Name: c.Name, Slug: c.Slug}
	} else if listing.Category.Slug != "" || listing.CategoryID != "" {
		notices = append(notices, Notice{Kind: NoticeCategoryNotFound, Message: "la categoría \"" + listing.Category.Name + "\" ya no existe; elija otra"})
	}

	// Región y ciudad: por etiqueta.
	var regionID string
	if r, ok := matchRegion(regions, listing.Location.Region); ok {
		regionID = r.ID
		d.regionLabel = r.Label
	} else if listing.Location.Region != "" {
		notices = append(notices, Notice{Kind: NoticeRegionNotFound, Message: "la región \"" + listing.Location.Region + "\" ya no existe; elija otra"})
	}
	if regionID != "" {
		cities, err := l.places.Resolve(ctx, regionID)
		if err != nil {
			notices = append(notices, Notice{Kind: NoticeCitiesUnavailable, Message: err.Error()})
			d.location.Restore(regionID, nil, "")
			d.citiesStatus = ResolutionUnavailable
		} else {
			cityID := ""
			if c, ok := matchCity(cities, listing.Location.City); ok {
				cityID = c.ID
			} else if listing.Location.City != "" {
				notices = append(notices, Notice{Kind: NoticeCityNotFound, Message: "la ciudad \"" + listing.Location.City + "\" ya no existe en la región; elija otra"})
			}
			d.location.Restore(regionID, cities, cityID)
			d.citiesStatus = ResolutionResolved
		}
	}

	// Esquema y valores de atributos.
	if d.CategoryID != "" {
		d.schemaSeq++
		s, err := l.schemas.Resolve(ctx, d.CategoryID)
		if err != nil {
			notices = append(notices, Notice{Kind: NoticeFiltersUnavailable, Message: err.Error()})
			d.schemaStatus = ResolutionUnavailable
		} else {
			d.schema = s
			d.schemaStatus = ResolutionResolved
			notices = append(notices, d.restoreAttributes(listing.Attributes)...)
		}
	}
	return d, notices
}

// restoreAttributes asigna a cada filtro del esquema el valor persistido o nada.
// Atributos de filtros que ya no existen, o con valores que no encajan, se descartan.
func (d *Draft) restoreAttributes(stored []entity.StoredAttribute) []Notice {
	var notices []Notice
	for _, a := range stored {
		if _, ok := d.schema.Lookup(a.FilterID); !ok {
			continue
		}
		if _, dup := d.attributes[a.FilterID]; dup {
			continue
		}
		v, err := d.schema.Decode(a.FilterID, a.Value)
		if err != nil {
			if errors.Is(err, entity.ErrAttributeValue) {
				notices = append(notices, Notice{Kind: NoticeAttributeDropped, Message: err.Error()})
			}
			continue
		}
		if !v.IsEmpty() {
			d.attributes[a.FilterID] = v
		}
	}
	return notices
}

func matchCategory(categories []entity.Category, l *entity.Listing) (entity.Category, bool) {
	if l.CategoryID != "" {
		for _, c := range categories {
			if c.ID == l.CategoryID {
				return c, true
			}
		}
	}
	want := strings.TrimSpace(l.Category.Slug)
	if want == "" {
		return entity.Category{}, false
	}
	for _, c := range categories {
		if strings.EqualFold(c.Slug, want) {
			return c, true
		}
	}
	return entity.Category{}, false
}

func matchRegion(regions []entity.Region, label string) (entity.Region, bool) {
	for _, r := range regions {
		if sameLabel(r.Label, label) {
			return r, true
		}
	}
	return entity.Region{}, false
}

func matchCity(cities []entity.City, label string) (entity.City, bool) {
	for _, c := range cities {
		if sameLabel(c.Label, label) {
			return c, true
		}
	}
	return entity.City{}, false
}

// sameLabel compara etiquetas ignorando mayúsculas y espacios en los extremos.
// TODO: guardar regionId/cityId en el anuncio y dejar de reconciliar por etiqueta; un renombre rompe la coincidencia.
func sameLabel(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
