package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingType venta o alquiler.
type ListingType string

const (
	ListingSell ListingType = "sell"
	ListingRent ListingType = "rent"
)

// RentPeriod periodo de alquiler; solo aplica cuando Type = rent.
type RentPeriod string

const (
	RentHour  RentPeriod = "hour"
	RentDay   RentPeriod = "day"
	RentWeek  RentPeriod = "week"
	RentMonth RentPeriod = "month"
)

// Valid indica si el periodo es uno de los soportados.
func (p RentPeriod) Valid() bool {
	switch p {
	case RentHour, RentDay, RentWeek, RentMonth:
		return true
	}
	return false
}

// Currency moneda del precio.
type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
)

// Valid indica si la moneda es soportada.
func (c Currency) Valid() bool {
	return c == CurrencyGEL || c == CurrencyUSD
}

// PriceType precio fijo o negociable.
type PriceType string

const (
	PriceFixed      PriceType = "fixed"
	PriceNegotiable PriceType = "negotiable"
)

// Condition estado del equipo.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// ListingStatus estado de publicación (gestionado por la capa de persistencia).
type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusSold    ListingStatus = "sold"
	StatusRented  ListingStatus = "rented"
	StatusExpired ListingStatus = "expired"
)

// ListingCategory instantánea {name, slug} de la categoría para mostrar.
type ListingCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListingLocation instantánea de etiquetas de región y ciudad.
type ListingLocation struct {
	Region string `json:"region"`
	City   string `json:"city"`
}

// Specifications datos técnicos comunes del equipo.
type Specifications struct {
	Condition Condition `json:"condition,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	Year      *int      `json:"year,omitempty"`
	Capacity  string    `json:"capacity,omitempty"`
	Power     string    `json:"power,omitempty"`
}

// IsEmpty indica si no hay ningún dato técnico.
func (s Specifications) IsEmpty() bool {
	return s.Condition == "" && s.Brand == "" && s.Model == "" && s.Year == nil && s.Capacity == "" && s.Power == ""
}

// Promotion metadatos de monetización; el editor los reenvía sin cambios.
type Promotion struct {
	IsFeatured     bool       `json:"isFeatured,omitempty"`
	FeaturedUntil  *time.Time `json:"featuredUntil,omitempty"`
	IsHighlighted  bool       `json:"isHighlighted,omitempty"`
	HighlightUntil *time.Time `json:"highlightUntil,omitempty"`
	IsHomepageTop  bool       `json:"isHomepageTop,omitempty"`
	HomepageUntil  *time.Time `json:"homepageUntil,omitempty"`
}

// Listing representa un anuncio persistido (venta o alquiler de equipo).
type Listing struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Type           ListingType       `json:"type"`
	CategoryID     string            `json:"categoryId,omitempty"`
	Category       ListingCategory   `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	Currency       Currency          `json:"currency"`
	PriceType      PriceType         `json:"priceType"`
	RentPeriod     RentPeriod        `json:"rentPeriod,omitempty"`
	Images         []string          `json:"images"`
	Thumbnail      string            `json:"thumbnail,omitempty"`
	Specifications Specifications    `json:"specifications"`
	Location       ListingLocation   `json:"location"`
	Attributes     []StoredAttribute `json:"attributes"`
	OwnerID        string            `json:"ownerId"`
	Status         ListingStatus     `json:"status"`
	Promotion
	Views          int       `json:"views"`
	Saves          int       `json:"saves"`
	SEOTitle       string    `json:"seoTitle,omitempty"`
	SEODescription string    `json:"seoDescription,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListingPayload es la forma serializada del borrador que consume la persistencia
// (create/update). Los campos condicionales se omiten cuando no aplican.
type ListingPayload struct {
	Title          string           `json:"title"`
	Slug           string           `json:"slug,omitempty"`
	Description    string           `json:"description"`
	Type           ListingType      `json:"type"`
	CategoryID     string           `json:"categoryId"`
	Category       ListingCategory  `json:"category"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Currency       Currency         `json:"currency"`
	PriceType      PriceType        `json:"priceType"`
	RentPeriod     RentPeriod       `json:"rentPeriod,omitempty"`
	Images         []string         `json:"images,omitempty"`
	Thumbnail      string           `json:"thumbnail,omitempty"`
	Specifications *Specifications  `json:"specifications,omitempty"`
	Location       ListingLocation  `json:"location"`
	Attributes     []Attribute      `json:"attributes,omitempty"`
	Status         ListingStatus    `json:"status,omitempty"`
	Promotion
	SEOTitle       string `json:"seoTitle,omitempty"`
	SEODescription string `json:"seoDescription,omitempty"`
}
