package record

import (
	"fmt"
)

// RecordSet maps keys to records and remembers insertion order.
type RecordSet struct {
	schema Schema
	order  []string
	byKey  map[string]Record
}

// NewRecordSet returns an empty set for a schema.
func NewRecordSet(schema Schema) *RecordSet {
	return &RecordSet{
		schema: schema,
		byKey:  make(map[string]Record),
	}
}

// BuildRecordSet collects records into a set. Every duplicated key is
// gathered and reported in a single DuplicateKeyError naming source.
func BuildRecordSet(schema Schema, source string, records []Record) (*RecordSet, error) {
	rs := NewRecordSet(schema)
	var dups []string
	seen := make(map[string]bool)

	for _, r := range records {
		if r.Key == "" {
			return nil, &ValidationError{Row: r.Line, Field: schema.KeyField().Name, Message: "empty key"}
		}
		if len(r.Values) != schema.Width() {
			return nil, &ValidationError{
				Row:     r.Line,
				Message: fmt.Sprintf("expected %d columns, got %d", schema.Width(), len(r.Values)),
			}
		}
		if _, exists := rs.byKey[r.Key]; exists {
			if !seen[r.Key] {
				dups = append(dups, r.Key)
				seen[r.Key] = true
			}
			continue
		}
		rs.byKey[r.Key] = r
		rs.order = append(rs.order, r.Key)
	}

	if len(dups) > 0 {
		return nil, &DuplicateKeyError{Source: source, Keys: dups}
	}
	return rs, nil
}

// Add inserts a record; an empty or already present key is an error.
func (rs *RecordSet) Add(r Record) error {
	if r.Key == "" {
		return &ValidationError{Row: r.Line, Field: rs.schema.KeyField().Name, Message: "empty key"}
	}
	if _, exists := rs.byKey[r.Key]; exists {
		return &DuplicateKeyError{Keys: []string{r.Key}}
	}
	if len(r.Values) != rs.schema.Width() {
		return &ValidationError{
			Row:     r.Line,
			Message: fmt.Sprintf("expected %d columns, got %d", rs.schema.Width(), len(r.Values)),
		}
	}
	rs.byKey[r.Key] = r
	rs.order = append(rs.order, r.Key)
	return nil
}

// Schema returns the set's schema.
func (rs *RecordSet) Schema() Schema {
	return rs.schema
}

// Get returns the record stored under key.
func (rs *RecordSet) Get(key string) (Record, bool) {
	r, ok := rs.byKey[key]
	return r, ok
}

// Has reports whether key is present.
func (rs *RecordSet) Has(key string) bool {
	_, ok := rs.byKey[key]
	return ok
}

// Keys returns the keys in insertion order.
func (rs *RecordSet) Keys() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Records returns the records in insertion order.
func (rs *RecordSet) Records() []Record {
	out := make([]Record, 0, len(rs.order))
	for _, k := range rs.order {
		out = append(out, rs.byKey[k])
	}
	return out
}

// Len returns the number of records.
func (rs *RecordSet) Len() int {
	return len(rs.order)
}
