package tsv

import (
	"regexp"
	"strings"
)

var commentPattern = regexp.MustCompile(`<!--[\s\S]*?-->`)

// StripComments removes every HTML comment from s. The line breaks inside a
// comment are kept, so line numbers still match the original text.
func StripComments(s string) string {
	return commentPattern.ReplaceAllStringFunc(s, func(comment string) string {
		return strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return r
			}
			return -1
		}, comment)
	})
}

// NewlineOf returns "\r\n" when the text contains it anywhere, else "\n".
func NewlineOf(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// SplitLines splits text on line breaks and drops the terminators.
// A trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// SplitFields splits one table line on tabs.
func SplitFields(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r\n"), "\t")
}

// IsBlank reports whether a line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
