package codes

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"catalog-sync/core/record"
)

// MaxCodeLength bounds what is accepted as a product code.
const MaxCodeLength = 40

// Separator splits the fields of an image filename.
const Separator = "_"

// ImageExtensions lists the recognised image file extensions.
var ImageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".bmp": {}, ".tif": {}, ".tiff": {}, ".webp": {},
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	underscores = regexp.MustCompile(`_+`)
)

// IsImage reports whether the file name has an image extension.
func IsImage(name string) bool {
	_, ok := ImageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Sanitize replaces every character outside [A-Za-z0-9_-] with '_'.
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// CleanStem sanitizes s, collapses runs of '_' and trims them from the ends.
func CleanStem(s string) string {
	return strings.Trim(underscores.ReplaceAllString(Sanitize(s), "_"), "_")
}

// LooksLikeProductCode reports whether s is non-empty, at most MaxCodeLength
// characters and contains at least one digit.
func LooksLikeProductCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxCodeLength {
		return false
	}
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ExtractCodeKey returns the code prefix of a file stem: everything before
// the first separator of the sanitized stem, or the whole stem.
func ExtractCodeKey(stem string) string {
	s := Sanitize(stem)
	if s == "" {
		return ""
	}
	key, _, _ := strings.Cut(s, Separator)
	return key
}

// ParseFilename splits an image file name into product fields. With six or
// more parts the last four are category, brand, price and stock and every
// part between the code and those is the name. Shorter names fill the
// fields in order and leave the rest empty.
func ParseFilename(filename string) record.Product {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, Separator)

	if len(parts) < 6 {
		parts = append(parts, make([]string, 6-len(parts))...)
		return record.Product{
			Code:      strings.TrimSpace(parts[0]),
			Name:      strings.TrimSpace(parts[1]),
			Category:  strings.TrimSpace(parts[2]),
			Brand:     strings.TrimSpace(parts[3]),
			UnitPrice: strings.TrimSpace(parts[4]),
			Stock:     strings.TrimSpace(parts[5]),
		}
	}

	n := len(parts)
	return record.Product{
		Code:      strings.TrimSpace(parts[0]),
		Name:      strings.TrimSpace(strings.Join(parts[1:n-4], Separator)),
		Category:  strings.TrimSpace(parts[n-4]),
		Brand:     strings.TrimSpace(parts[n-3]),
		UnitPrice: strings.TrimSpace(parts[n-2]),
		Stock:     strings.TrimSpace(parts[n-1]),
	}
}

// StemMode selects what a stem built from a product contains.
type StemMode string

const (
	StemCode StemMode = "code"
	StemName StemMode = "name"
	StemBoth StemMode = "both"
)

// BuildStem returns the cleaned file stem for a product: its code, its name
// or "<code>_<name>". In both mode a missing part falls back to the other.
func BuildStem(code, name string, mode StemMode) string {
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)
	var stem string
	switch mode {
	case StemCode:
		stem = code
	case StemName:
		stem = name
	default:
		if code != "" && name != "" {
			stem = code + Separator + name
		} else if code != "" {
			stem = code
		} else {
			stem = name
		}
	}
	return CleanStem(stem)
}
