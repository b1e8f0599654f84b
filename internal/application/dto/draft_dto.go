package dto

import (
	"encoding/json"

	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// DraftEventRequest una edición del formulario. Value depende de Type:
//   - setTitle, setSlug, setDescription, setThumbnail: string
//   - setType (sell|rent), setPriceType (fixed|negotiable), setCurrency, setRentPeriod: string
//   - setPrice: string o número decimal; null borra el precio
//   - selectCategory, selectRegion, selectCity: id (string, "" deselecciona)
//   - setAttribute: string con la entrada del operador; FilterID obligatorio
//   - setSpecifications: objeto {condition, brand, model, year, capacity, power}
//   - setImages: lista de URLs o un string con una URL por línea
//   - setSeo: objeto {title, description}
type DraftEventRequest struct {
	Type     string          `json:"type"`
	FilterID string          `json:"filterId,omitempty"`
	Value    json.RawMessage `json:"value" swaggertype:"object"`
}

// DraftEventsRequest lote de ediciones aplicadas en orden.
type DraftEventsRequest struct {
	Events []DraftEventRequest `json:"events"`
	// Wait espera a que terminen las consultas de esquema/ciudades antes de responder.
	Wait bool `json:"wait"`
}

// SEOValue valor de setSeo.
type SEOValue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NoticeResponse aviso descartable.
type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DraftResponse estado completo del borrador para renderizar el formulario.
type DraftResponse struct {
	ID            string                           `json:"id"`
	State         string                           `json:"state"`
	Phase         string                           `json:"phase"`
	ListingID     string                           `json:"listingId,omitempty"`
	Form          entity.ListingPayload            `json:"form"`
	RegionID      string                           `json:"regionId"`
	CityID        string                           `json:"cityId"`
	SchemaStatus  string                           `json:"schemaStatus"`
	CitiesStatus  string                           `json:"citiesStatus"`
	Categories    []CategoryResponse               `json:"categories"`
	Regions       []RegionResponse                 `json:"regions"`
	Filters       []FilterResponse                 `json:"filters"`
	Values        map[string]entity.AttributeValue `json:"values"`
	Cities        []CityResponse                   `json:"cities"`
	PriceEditable bool                             `json:"priceEditable"`
	Submittable   bool                             `json:"submittable"`
	Errors        map[string]string                `json:"errors,omitempty"`
	Notices       []NoticeResponse                 `json:"notices,omitempty"`
	LastError     string                           `json:"lastError,omitempty"`
	Listing       *entity.Listing                  `json:"listing,omitempty"`
}

// ValidationErrorResponse errores por campo que bloquean el envío.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}
