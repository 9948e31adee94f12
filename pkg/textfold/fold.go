// Package textfold pliega texto para búsqueda: quita marcas diacríticas de
// forma que "musli" encuentre "Müsli". Se aplica tanto al término buscado
// como a la columna indexada.
package textfold

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold descompone (NFD), elimina marcas diacríticas y recompone (NFC).
// Ante una entrada no transformable devuelve el original sin tocar.
func Fold(s string) string {
	folded, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return folded
}
