package listingdraft

import (
	"strings"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/pkg/slug"
)

// Payload serializa el borrador al payload de persistencia. Textos recortados,
// slug normalizado (omitido si está vacío), rentPeriod solo en alquiler, precio omitido
// solo si es negociable y nunca se cargó, atributos solo con valor.
func (d *Draft) Payload() entity.ListingPayload {
	p := entity.ListingPayload{
		Title:       strings.TrimSpace(d.Title),
		Slug:        slug.Normalize(d.Slug),
		Description: strings.TrimSpace(d.Description),
		Type:        d.Type,
		CategoryID:  d.CategoryID,
		Category: entity.ListingCategory{
			Name: strings.TrimSpace(d.Category.Name),
			Slug: slug.Normalize(d.Category.Slug),
		},
		Currency:       d.Currency,
		PriceType:      d.PriceType,
		Location:       d.Location(),
		Attributes:     d.Attributes(),
		Status:         d.Status,
		Promotion:      d.Promotion,
		Thumbnail:      strings.TrimSpace(d.Thumbnail),
		SEOTitle:       strings.TrimSpace(d.SEOTitle),
		SEODescription: strings.TrimSpace(d.SEODescription),
	}
	if d.Price != nil {
		price := *d.Price
		p.Price = &price
	}
	if d.Type == entity.ListingRent && d.RentPeriod != "" {
		p.RentPeriod = d.RentPeriod
	}
	for _, img := range d.Images {
		if s := strings.TrimSpace(img); s != "" {
			p.Images = append(p.Images, s)
		}
	}
	specs := entity.Specifications{
		Condition: d.Specifications.Condition,
		Brand:     strings.TrimSpace(d.Specifications.Brand),
		Model:     strings.TrimSpace(d.Specifications.Model),
		Year:      d.Specifications.Year,
		Capacity:  strings.TrimSpace(d.Specifications.Capacity),
		Power:     strings.TrimSpace(d.Specifications.Power),
	}
	if !specs.IsEmpty() {
		p.Specifications = &specs
	}
	return p
}
