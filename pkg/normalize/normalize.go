// Package normalize genera claves de comparación para nombres escritos por usuarios.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key devuelve una clave sin acentos, en minúsculas (case folding) y con espacios colapsados:
// "  Café  Açúcar " → "cafe acucar". Dos nombres con la misma clave se consideran duplicados.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Title capitaliza cada palabra de un identificador tipo CONSTANTE: "CREATE_PRODUCT" → "Create Product".
func Title(constant string) string {
	words := strings.ReplaceAll(strings.ToLower(constant), "_", " ")
	return cases.Title(languageTag).String(words)
}
