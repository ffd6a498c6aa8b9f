package quiz

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares a free-text answer for comparison
//
// The text is lowercased and trimmed, accents are stripped, punctuation is removed
// and inner whitespace is collapsed to single spaces.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		stripped = strings.ToLower(text)
	}

	var b strings.Builder
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeDictation keeps only word characters of a lowercased text
func normalizeDictation(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// alternatives splits a translation such as "casa, hogar / vivienda" into normalized variants
func alternatives(translation string) []string {
	parts := strings.FieldsFunc(translation, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '|'
	})

	variants := make([]string, 0, len(parts)+1)
	if whole := Normalize(translation); whole != "" {
		variants = append(variants, whole)
	}
	for _, part := range parts {
		if normalized := Normalize(part); normalized != "" {
			variants = append(variants, normalized)
		}
	}
	return variants
}
