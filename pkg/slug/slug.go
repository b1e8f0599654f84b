// Package slug genera etiquetas aptas para URL.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make deriva un slug desde un nombre: minúsculas, sin acentos, separadores a '-'.
// Conserva letras de cualquier alfabeto (ej. georgiano).
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, s)
	if err != nil {
		clean = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(clean) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Normalize limpia un slug escrito por el operador: recorta, pasa a minúsculas
// y reemplaza cada tramo de espacios por '-'.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// OrMake devuelve Normalize(given) o, si está vacío, Make(from).
func OrMake(given, from string) string {
	if s := Normalize(given); s != "" {
		return s
	}
	return Make(from)
}
