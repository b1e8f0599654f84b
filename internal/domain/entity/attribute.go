package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrAttributeValue se devuelve cuando un valor no corresponde al tipo del filtro.
var ErrAttributeValue = errors.New("valor de atributo inválido")

// AttributeValue es la unión etiquetada de valores de atributo según el tipo de filtro:
// select y text -> string, range y number -> numérico, checkbox -> booleano.
// El valor cero es vacío.
type AttributeValue struct {
	kind FilterType
	text string
	num  float64
	flag bool
}

// SelectValue construye un valor para un filtro select.
func SelectValue(option string) AttributeValue {
	return AttributeValue{kind: FilterSelect, text: option}
}

// TextValue construye un valor de texto libre.
func TextValue(s string) AttributeValue {
	return AttributeValue{kind: FilterText, text: s}
}

// NumberValue construye un valor numérico para filtros range o number.
func NumberValue(kind FilterType, n float64) AttributeValue {
	return AttributeValue{kind: kind, num: n}
}

// CheckboxValue construye un valor booleano.
func CheckboxValue(b bool) AttributeValue {
	return AttributeValue{kind: FilterCheckbox, flag: b}
}

// Kind devuelve el tipo de filtro al que pertenece el valor ("" si es el valor cero).
func (v AttributeValue) Kind() FilterType { return v.kind }

// Text devuelve el valor de select/text.
func (v AttributeValue) Text() string { return v.text }

// Number devuelve el valor de range/number.
func (v AttributeValue) Number() float64 { return v.num }

// Bool devuelve el valor de checkbox.
func (v AttributeValue) Bool() bool { return v.flag }

// IsEmpty indica si el valor no debe persistirse: textos en blanco, checkbox sin marcar
// o valor sin tipo. Los numéricos nunca son vacíos (0 es un valor válido).
func (v AttributeValue) IsEmpty() bool {
	switch v.kind {
	case FilterSelect, FilterText:
		return strings.TrimSpace(v.text) == ""
	case FilterCheckbox:
		return !v.flag
	case FilterRange, FilterNumber:
		return false
	}
	return true
}

// Equal compara dos valores incluyendo su tipo.
func (v AttributeValue) Equal(o AttributeValue) bool {
	return v == o
}

// String representación legible (para logs y formularios).
func (v AttributeValue) String() string {
	switch v.kind {
	case FilterSelect, FilterText:
		return v.text
	case FilterRange, FilterNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case FilterCheckbox:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

// MarshalJSON emite el escalar crudo: string, número o booleano.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FilterSelect, FilterText:
		return json.Marshal(v.text)
	case FilterRange, FilterNumber:
		return json.Marshal(v.num)
	case FilterCheckbox:
		return json.Marshal(v.flag)
	}
	return []byte("null"), nil
}

// ParseAttributeValue interpreta la entrada del operador (texto de formulario) según el filtro.
// Una entrada en blanco produce el valor vacío del tipo, sin error.
func ParseAttributeValue(f Filter, raw string) (AttributeValue, error) {
	s := strings.TrimSpace(raw)
	switch f.Type {
	case FilterSelect:
		if s == "" {
			return SelectValue(""), nil
		}
		if !f.HasOption(s) {
			return AttributeValue{}, fmt.Errorf("%w: %q no es una opción de %s", ErrAttributeValue, s, f.Name)
		}
		return SelectValue(s), nil
	case FilterText:
		return TextValue(s), nil
	case FilterRange, FilterNumber:
		if s == "" {
			return AttributeValue{}, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return AttributeValue{}, fmt.Errorf("%w: %s debe ser numérico", ErrAttributeValue, f.Name)
		}
		return NumberValue(f.Type, n), nil
	case FilterCheckbox:
		if s == "" {
			return CheckboxValue(false), nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return AttributeValue{}, fmt.Errorf("%w: %s debe ser true o false", ErrAttributeValue, f.Name)
		}
		return CheckboxValue(b), nil
	}
	return AttributeValue{}, fmt.Errorf("%w: tipo de filtro %q desconocido", ErrAttributeValue, f.Type)
}

// DecodeAttributeValue interpreta un valor persistido (JSON crudo) contra el filtro actual.
// Se aceptan números guardados como string y viceversa para select/text.
func DecodeAttributeValue(f Filter, raw json.RawMessage) (AttributeValue, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return AttributeValue{}, fmt.Errorf("%w: vacío", ErrAttributeValue)
	}
	var scalar interface{}
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return AttributeValue{}, fmt.Errorf("%w: %v", ErrAttributeValue, err)
	}
	switch x := scalar.(type) {
	case string:
		return ParseAttributeValue(f, x)
	case float64:
		if f.Type.IsNumeric() {
			return NumberValue(f.Type, x), nil
		}
		return ParseAttributeValue(f, strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		if f.Type == FilterCheckbox {
			return CheckboxValue(x), nil
		}
	}
	return AttributeValue{}, fmt.Errorf("%w: %s no admite %s", ErrAttributeValue, f.Name, string(raw))
}

// Attribute es el valor de un anuncio ligado a un filtro por FilterID.
type Attribute struct {
	FilterID string         `json:"filterId"`
	Value    AttributeValue `json:"value"`
}

// StoredAttribute es la forma persistida de un atributo; el valor se decodifica
// contra el esquema vigente de la categoría al reconstruir el borrador.
type StoredAttribute struct {
	FilterID string          `json:"filterId"`
	Value    json.RawMessage `json:"value"`
}
