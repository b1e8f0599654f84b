package listingdraft

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// Límites del formulario de anuncio.
const (
	TitleMinLen          = 2
	TitleMaxLen          = 200
	SlugMaxLen           = 200
	SEOTitleMaxLen       = 70
	SEODescriptionMaxLen = 160
)

// ValidationErrors errores de validación por campo (campo -> mensaje).
type ValidationErrors map[string]string

// Error implementa error listando los campos en orden estable.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Validate evalúa las reglas locales que habilitan el envío. Devuelve nil si el borrador
// es enviable. Categoría y ciudad solo cuentan cuando su resolución terminó.
func (d *Draft) Validate() ValidationErrors {
	errs := ValidationErrors{}

	title := strings.TrimSpace(d.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		errs["title"] = "el título es obligatorio"
	case n < TitleMinLen || n > TitleMaxLen:
		errs["title"] = "el título debe tener entre 2 y 200 caracteres"
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Slug)) > SlugMaxLen {
		errs["slug"] = "el slug admite como máximo 200 caracteres"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "la descripción es obligatoria"
	}

	switch {
	case d.CategoryID == "":
		errs["category"] = "elija una categoría"
	case !d.schemaStatus.Completed():
		errs["category"] = "cargando los filtros de la categoría"
	}
	if d.schemaStatus == ResolutionResolved {
		for _, f := range d.schema.Required() {
			if v, ok := d.attributes[f.ID]; !ok || v.IsEmpty() {
				errs["attributes."+f.ID] = f.Name + " es obligatorio"
			}
		}
	}

	if d.PriceType == entity.PriceFixed {
		switch {
		case d.Price == nil:
			errs["price"] = "el precio es obligatorio"
		case d.Price.IsNegative():
			errs["price"] = "el precio no puede ser negativo"
		}
	}
	if !d.Currency.Valid() {
		errs["currency"] = "elija una moneda"
	}

	if d.Type == entity.ListingRent && !d.RentPeriod.Valid() {
		errs["rentPeriod"] = "elija el periodo de alquiler"
	}

	switch {
	case d.location.RegionID() == "":
		errs["region"] = "elija una región"
	case !d.citiesStatus.Completed():
		errs["city"] = "cargando las ciudades de la región"
	case d.location.CityID() == "":
		errs["city"] = "elija una ciudad"
	}

	if y := d.Specifications.Year; y != nil && *y <= 0 {
		errs["specifications.year"] = "el año debe ser positivo"
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.SEOTitle)) > SEOTitleMaxLen {
		errs["seoTitle"] = "el título SEO admite como máximo 70 caracteres"
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.SEODescription)) > SEODescriptionMaxLen {
		errs["seoDescription"] = "la descripción SEO admite como máximo 160 caracteres"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submittable indica si el borrador pasa la validación local.
func (d *Draft) Submittable() bool {
	return d.Validate() == nil
}
