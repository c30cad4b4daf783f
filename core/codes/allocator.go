package codes

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"catalog-sync/core/record"
)

var hasLetter = regexp.MustCompile(`[A-Za-z]`)

// Allocate returns the n smallest integers in [min, max] that are not in
// used, continuing upward from max+1 (still skipping used) when the range
// runs out. Results are strictly increasing. When the integer space above
// max is exhausted fewer than n codes are returned.
func Allocate(used map[int64]struct{}, min, max int64, n int) []int64 {
	if n <= 0 {
		return nil
	}

	occupied := make([]int64, 0, len(used))
	for v := range used {
		if v >= min && v <= max {
			occupied = append(occupied, v)
		}
	}
	sort.Slice(occupied, func(i, j int) bool { return occupied[i] < occupied[j] })

	out := make([]int64, 0, n)
	cur := min
	for _, x := range occupied {
		if len(out) >= n {
			break
		}
		for cur < x && len(out) < n {
			out = append(out, cur)
			cur++
		}
		cur = x + 1
	}
	for cur <= max && len(out) < n {
		if _, taken := used[cur]; !taken {
			out = append(out, cur)
		}
		cur++
	}

	if max == math.MaxInt64 {
		return out
	}
	for cur = max + 1; len(out) < n; cur++ {
		if _, taken := used[cur]; !taken {
			out = append(out, cur)
		}
		if cur == math.MaxInt64 {
			break
		}
	}
	return out
}

// Stats summarizes the numeric codes of a record set.
type Stats struct {
	Min   int64
	Max   int64
	Used  map[int64]struct{}
	Width int // widest numeric code, used for zero padding
}

// NumericStats collects the numeric codes among keys. Codes containing
// letters are skipped; spaces and separators inside digits are ignored, so
// "1 200" counts as 1200. With no numeric code at all a ValidationError is
// returned.
func NumericStats(keys []string) (*Stats, error) {
	stats := &Stats{Used: make(map[int64]struct{})}
	found := false

	for _, raw := range keys {
		raw = strings.TrimSpace(raw)
		if raw == "" || hasLetter.MatchString(raw) {
			continue
		}
		digits := record.DigitsOnly(raw)
		if digits == "" {
			continue
		}
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}

		stats.Used[v] = struct{}{}
		if !found || v < stats.Min {
			stats.Min = v
		}
		if !found || v > stats.Max {
			stats.Max = v
		}
		if len(digits) > stats.Width {
			stats.Width = len(digits)
		}
		found = true
	}

	if !found {
		return nil, &record.ValidationError{Field: "code", Message: "no numeric codes found to compute gaps"}
	}
	return stats, nil
}

// FormatCode renders n zero padded to width digits.
func FormatCode(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if width > 1 && len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
