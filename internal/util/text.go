package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldASCII strips diacritics, e.g. "São Paulo" becomes "Sao Paulo".
func FoldASCII(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return result
}

func NormalizeName(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(FoldASCII(value))), " ")
}
