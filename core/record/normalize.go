package record

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader folds a column name for comparison: surrounding space is
// trimmed, case is lowered, diacritics are dropped and inner whitespace
// runs collapse to a single space. "  Categoría " and "categoria" are equal.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.Join(strings.Fields(folded), " ")
}

// HeadersMatch reports whether the first len(want) entries of got equal want
// after NormalizeHeader.
func HeadersMatch(got, want []string) bool {
	if len(got) < len(want) {
		return false
	}
	for i, w := range want {
		if NormalizeHeader(got[i]) != NormalizeHeader(w) {
			return false
		}
	}
	return true
}
