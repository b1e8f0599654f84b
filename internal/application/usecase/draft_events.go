package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chubrika/wineo-admin/internal/application/dto"
	"github.com/chubrika/wineo-admin/internal/application/listingdraft"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
)

// ErrUnknownEvent tipo de edición no soportado.
var ErrUnknownEvent = errors.New("tipo de evento desconocido")

// decodeEvent traduce una edición recibida por HTTP al evento del borrador.
func decodeEvent(req dto.DraftEventRequest) (listingdraft.Event, error) {
	switch req.Type {
	case "setTitle":
		s, err := decodeString(req.Value)
		return listingdraft.SetTitle{Value: s}, err
	case "setSlug":
		s, err := decodeString(req.Value)
		return listingdraft.SetSlug{Value: s}, err
	case "setDescription":
		s, err := decodeString(req.Value)
		return listingdraft.SetDescription{Value: s}, err
	case "setThumbnail":
		s, err := decodeString(req.Value)
		return listingdraft.SetThumbnail{Value: s}, err
	case "setType":
		s, err := decodeString(req.Value)
		return listingdraft.SetType{Value: entity.ListingType(s)}, err
	case "setPriceType":
		s, err := decodeString(req.Value)
		return listingdraft.SetPriceType{Value: entity.PriceType(s)}, err
	case "setCurrency":
		s, err := decodeString(req.Value)
		return listingdraft.SetCurrency{Value: entity.Currency(s)}, err
	case "setRentPeriod":
		s, err := decodeString(req.Value)
		return listingdraft.SetRentPeriod{Value: entity.RentPeriod(s)}, err
	case "setPrice":
		if isNull(req.Value) {
			return listingdraft.SetPrice{}, nil
		}
		var d decimal.Decimal
		if err := json.Unmarshal(req.Value, &d); err != nil {
			return nil, fmt.Errorf("setPrice: %w", err)
		}
		return listingdraft.SetPrice{Value: &d}, nil
	case "selectCategory":
		s, err := decodeString(req.Value)
		return listingdraft.SelectCategory{CategoryID: s}, err
	case "selectRegion":
		s, err := decodeString(req.Value)
		return listingdraft.SelectRegion{RegionID: s}, err
	case "selectCity":
		s, err := decodeString(req.Value)
		return listingdraft.SelectCity{CityID: s}, err
	case "setAttribute":
		if req.FilterID == "" {
			return nil, errors.New("setAttribute: filterId es requerido")
		}
		s, err := decodeScalar(req.Value)
		return listingdraft.SetAttribute{FilterID: req.FilterID, Value: s}, err
	case "setSpecifications":
		var specs entity.Specifications
		if !isNull(req.Value) {
			if err := json.Unmarshal(req.Value, &specs); err != nil {
				return nil, fmt.Errorf("setSpecifications: %w", err)
			}
		}
		return listingdraft.SetSpecifications{Value: specs}, nil
	case "setImages":
		var list []string
		if err := json.Unmarshal(req.Value, &list); err != nil {
			s, serr := decodeString(req.Value)
			if serr != nil {
				return nil, fmt.Errorf("setImages: %w", err)
			}
			list = []string{s}
		}
		return listingdraft.SetImages{Value: list}, nil
	case "setSeo":
		var seo dto.SEOValue
		if !isNull(req.Value) {
			if err := json.Unmarshal(req.Value, &seo); err != nil {
				return nil, fmt.Errorf("setSeo: %w", err)
			}
		}
		return listingdraft.SetSEO{Title: seo.Title, Description: seo.Description}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, req.Type)
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("se esperaba un string: %w", err)
	}
	return s, nil
}

// decodeScalar acepta string, número o booleano y lo devuelve como texto de formulario.
func decodeScalar(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	}
	return "", errors.New("se esperaba un valor escalar")
}
