package record

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonNumericChars = regexp.MustCompile(`[^\d,.\-]`)
	nonDigits       = regexp.MustCompile(`\D`)
	dotThousands    = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	commaThousands  = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
)

// ParseDecimal parses a locale-tolerant price.
//
// Everything except digits, ',', '.' and '-' is discarded first. When both
// separators appear, whichever comes last is the decimal separator. When
// only one kind appears, a single occurrence followed by one or two digits
// is a decimal separator and anything else is a thousands separator, so
// "1,23" is 1.23 while "1,234" is 1234.
func ParseDecimal(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimSpace(nonNumericChars.ReplaceAllString(s, ""))
	if s == "" {
		return decimal.Zero, &ValidationError{Value: raw, Message: "not a valid number"}
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && isShortFraction(parts[1]) {
			s = parts[0] + "." + parts[1]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	default:
		parts := strings.Split(s, ".")
		if len(parts) != 2 || !isShortFraction(parts[1]) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	if neg {
		s = "-" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Value: raw, Message: "not a valid number"}
	}
	return d, nil
}

func isShortFraction(s string) bool {
	return len(s) >= 1 && len(s) <= 2
}

// DigitsOnly returns the digits of s in order.
func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ParseInteger reads a whole number with the same separator rules as
// ParseDecimal, so "40.000" is 40000 and "-5" is -5. A value with a
// fractional part ("5.5") or without any digit is a validation error.
func ParseInteger(s string) (int64, error) {
	if DigitsOnly(s) == "" {
		return 0, &ValidationError{Value: s, Message: "not a valid integer"}
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, &ValidationError{Value: s, Message: "not a valid integer"}
	}
	if !d.IsInteger() {
		return 0, &ValidationError{Value: s, Message: "not a whole number"}
	}
	n := d.BigInt()
	if !n.IsInt64() {
		return 0, &ValidationError{Value: s, Message: "integer out of range"}
	}
	return n.Int64(), nil
}

// DecimalText renders a typed number (a spreadsheet number cell, a database
// decimal) as table text that ParseDecimal reads back to the same value.
// Integral values have no separator and fractions use '.' with one or two
// places. A value needing three or more fraction digits cannot be written
// without being read back as thousands, so it is a validation error.
func DecimalText(d decimal.Decimal) (string, error) {
	if d.IsInteger() {
		return d.StringFixed(0), nil
	}
	if !d.Equal(d.Round(2)) {
		return "", &ValidationError{Value: d.String(), Message: "more than two decimal places"}
	}
	text := d.StringFixed(2)
	text = strings.TrimSuffix(text, "0")
	return text, nil
}

// IsNumericKey reports whether a key is made only of digits.
func IsNumericKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && DigitsOnly(key) == key
}

// CompareKeys orders keys for REMOVED entries: digit-only keys come first,
// by integer value, then every other key in lexical order. It returns -1, 0
// or +1.
func CompareKeys(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	na, nb := IsNumericKey(a), IsNumericKey(b)

	switch {
	case na && nb:
		ia, _ := new(big.Int).SetString(a, 10)
		ib, _ := new(big.Int).SetString(b, 10)
		if c := ia.Cmp(ib); c != 0 {
			return c
		}
	case na:
		return -1
	case nb:
		return 1
	}
	return strings.Compare(a, b)
}

// PriceStyle is the thousands separator convention of a price column.
type PriceStyle string

const (
	PriceStylePlain PriceStyle = "plain" // 40000
	PriceStyleDot   PriceStyle = "dot"   // 40.000
	PriceStyleComma PriceStyle = "comma" // 40,000
)

// DetectPriceStyle inspects existing price values. A value shaped like a
// grouped integer decides immediately; otherwise the first value carrying a
// separator does. With no separators at all the style is plain.
//
// Like the "1,234" case of ParseDecimal this is lossy: a page whose prices
// use '.' as the decimal point ("12.5") is taken as dot-grouped, and later
// values render as "1.234,5".
func DetectPriceStyle(values []string) PriceStyle {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if dotThousands.MatchString(v) {
			return PriceStyleDot
		}
		if commaThousands.MatchString(v) {
			return PriceStyleComma
		}
		if strings.Contains(v, ".") {
			return PriceStyleDot
		}
		if strings.Contains(v, ",") {
			return PriceStyleComma
		}
	}
	return PriceStylePlain
}

// FormatPrice renders a price in the given style. Integral values are
// grouped by thousands ("40.000", "40,000" or "40000"); non-integral values
// keep their decimal places and use the other separator for the fraction.
// Values that do not parse are returned trimmed and otherwise unchanged.
func FormatPrice(value string, style PriceStyle) string {
	trimmed := strings.TrimSpace(value)
	d, err := ParseDecimal(trimmed)
	if err != nil {
		return trimmed
	}

	places := int32(0)
	if exp := d.Exponent(); exp < 0 {
		places = -exp
	}
	if d.Equal(d.Truncate(0)) {
		places = 0
	}

	text := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(text, ".")

	var thousands, point string
	switch style {
	case PriceStyleDot:
		thousands, point = ".", ","
	case PriceStyleComma:
		thousands, point = ",", "."
	default:
		if places > 0 {
			return trimmed
		}
		thousands, point = "", "."
	}

	out := groupThousands(intPart, thousands)
	if frac != "" {
		out += point + frac
	}
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
