package trim

import "strings"

// State describes a page's table.
type State string

const (
	StateComplete State = "complete"
	StateTrimmed  State = "trimmed"
	StateInvalid  State = "invalid"
)

// splitLinesKeep splits text after every line terminator, keeping it.
func splitLinesKeep(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// SplitKept divides a cleaned table region into the part kept by a trim
// (everything up to and including the first product line) and the rest.
// The kept part always ends with a line terminator.
func SplitKept(cleaned string) (kept, removed string) {
	lines := splitLinesKeep(cleaned)

	header := -1
	for i, ln := range lines {
		if strings.TrimSpace(ln) != "" {
			header = i
			break
		}
	}
	if header < 0 {
		return cleaned, ""
	}

	first := -1
	for j := header + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			first = j
			break
		}
	}
	if first < 0 {
		return cleaned, ""
	}

	kept = strings.Join(lines[:first+1], "")
	removed = strings.Join(lines[first+1:], "")
	if !strings.HasSuffix(kept, "\n") && !strings.HasSuffix(kept, "\r") {
		kept += "\n"
	}
	return kept, removed
}

// IsTrimmed reports whether a cleaned table region holds nothing past the
// first product.
func IsTrimmed(cleaned string) bool {
	_, removed := SplitKept(cleaned)
	return strings.TrimSpace(removed) == ""
}
