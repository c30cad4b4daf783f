package record

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched through errors.Is.
var (
	ErrStructure  = errors.New("structure error")
	ErrValidation = errors.New("validation error")
	ErrIO         = errors.New("io error")
)

// StructureError reports a document whose table region is missing,
// ambiguous or malformed. Issues holds every problem found in one pass.
type StructureError struct {
	Issues []string
}

// NewStructureError builds a StructureError from one or more issues.
func NewStructureError(issues ...string) *StructureError {
	return &StructureError{Issues: issues}
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid table structure"
	case 1:
		return "invalid table structure: " + e.Issues[0]
	default:
		return "invalid table structure:\n- " + strings.Join(e.Issues, "\n- ")
	}
}

// Is reports whether the target is ErrStructure.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// ValidationError reports a bad value in a source row.
type ValidationError struct {
	Field   string
	Value   string
	Row     int // 1-based row or line number; 0 when unknown
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	return b.String()
}

// Is reports whether the target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// maxDuplicateExamples bounds the keys listed in DuplicateKeyError messages.
const maxDuplicateExamples = 20

// DuplicateKeyError reports keys that appear more than once in a set.
type DuplicateKeyError struct {
	Source string
	Keys   []string
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	keys := e.Keys
	suffix := ""
	if len(keys) > maxDuplicateExamples {
		suffix = fmt.Sprintf(" (and %d more)", len(keys)-maxDuplicateExamples)
		keys = keys[:maxDuplicateExamples]
	}
	src := e.Source
	if src == "" {
		src = "record set"
	}
	return fmt.Sprintf("duplicate keys in %s: %s%s", src, strings.Join(keys, ", "), suffix)
}

// Is reports whether the target is ErrValidation.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrValidation
}

// IOError wraps a failed read, write or rename.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError wraps err, or returns nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
