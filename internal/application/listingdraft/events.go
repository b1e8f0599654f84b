package listingdraft

import (
	"github.com/shopspring/decimal"

	"github.com/chubrika/wineo-admin/internal/application/location"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// Event edición del operador sobre el borrador. Session.Dispatch las aplica en orden.
type Event interface {
	apply(d *Draft) (effect, error)
}

// effect consultas asíncronas que una edición dispara.
type effect struct {
	schema *SchemaTicket
	cities *location.Ticket
}

type (
	SetTitle          struct{ Value string }
	SetSlug           struct{ Value string }
	SetDescription    struct{ Value string }
	SetType           struct{ Value entity.ListingType }
	SetPriceType      struct{ Value entity.PriceType }
	SetPrice          struct{ Value *decimal.Decimal }
	SetCurrency       struct{ Value entity.Currency }
	SetRentPeriod     struct{ Value entity.RentPeriod }
	SelectCategory    struct{ CategoryID string }
	SelectRegion      struct{ RegionID string }
	SelectCity        struct{ CityID string }
	SetAttribute      struct{ FilterID, Value string }
	SetSpecifications struct{ Value entity.Specifications }
	SetImages         struct{ Value []string }
	SetThumbnail      struct{ Value string }
	SetSEO            struct{ Title, Description string }
)

func (e SetTitle) apply(d *Draft) (effect, error) {
	d.Title = e.Value
	return effect{}, nil
}

func (e SetSlug) apply(d *Draft) (effect, error) {
	d.Slug = e.Value
	return effect{}, nil
}

func (e SetDescription) apply(d *Draft) (effect, error) {
	d.Description = e.Value
	return effect{}, nil
}

func (e SetType) apply(d *Draft) (effect, error) {
	return effect{}, d.SetType(e.Value)
}

func (e SetPriceType) apply(d *Draft) (effect, error) {
	return effect{}, d.SetPriceType(e.Value)
}

func (e SetPrice) apply(d *Draft) (effect, error) {
	return effect{}, d.SetPrice(e.Value)
}

func (e SetCurrency) apply(d *Draft) (effect, error) {
	return effect{}, d.SetCurrency(e.Value)
}

func (e SetRentPeriod) apply(d *Draft) (effect, error) {
	return effect{}, d.SetRentPeriod(e.Value)
}

func (e SelectCategory) apply(d *Draft) (effect, error) {
	t, fetch, err := d.SelectCategory(e.CategoryID)
	if err != nil || !fetch {
		return effect{}, err
	}
	return effect{schema: &t}, nil
}

func (e SelectRegion) apply(d *Draft) (effect, error) {
	t, fetch, err := d.SelectRegion(e.RegionID)
	if err != nil || !fetch {
		return effect{}, err
	}
	return effect{cities: &t}, nil
}

func (e SelectCity) apply(d *Draft) (effect, error) {
	return effect{}, d.SelectCity(e.CityID)
}

func (e SetAttribute) apply(d *Draft) (effect, error) {
	return effect{}, d.SetAttribute(e.FilterID, e.Value)
}

func (e SetSpecifications) apply(d *Draft) (effect, error) {
	return effect{}, d.SetSpecifications(e.Value)
}

func (e SetImages) apply(d *Draft) (effect, error) {
	d.SetImages(e.Value)
	return effect{}, nil
}

func (e SetThumbnail) apply(d *Draft) (effect, error) {
	d.Thumbnail = e.Value
	return effect{}, nil
}

func (e SetSEO) apply(d *Draft) (effect, error) {
	d.SEOTitle = e.Title
	d.SEODescription = e.Description
	return effect{}, nil
}
