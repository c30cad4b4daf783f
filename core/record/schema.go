package record

import (
	"fmt"
	"strings"
)

// FieldKind selects how a column is validated and compared.
type FieldKind int

const (
	// KindText compares trimmed values exactly.
	KindText FieldKind = iota
	// KindDecimal compares parsed prices numerically.
	KindDecimal
	// KindInteger compares the digits of the value as an integer.
	KindInteger
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindDecimal:
		return "decimal"
	case KindInteger:
		return "integer"
	default:
		return "text"
	}
}

// Field describes one column of a schema.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the fixed shape of a table variant.
type Schema struct {
	Name       string
	Fields     []Field
	KeyIndex   int
	PriceIndex int
}

// Variant names accepted by SchemaFor.
const (
	VariantCatalog   = "catalog"
	VariantInventory = "inventory"
)

// Catalog is the 5-field variant keyed by a numeric id in the last column.
var Catalog = Schema{
	Name: VariantCatalog,
	Fields: []Field{
		{Name: "Nombre producto", Kind: KindText},
		{Name: "Categoria", Kind: KindText},
		{Name: "Marca", Kind: KindText},
		{Name: "Valor unitario", Kind: KindDecimal},
		{Name: "id", Kind: KindInteger},
	},
	KeyIndex:   4,
	PriceIndex: 3,
}

// Inventory is the 6-field variant keyed by a free-text code in the first column.
var Inventory = Schema{
	Name: VariantInventory,
	Fields: []Field{
		{Name: "Codigo", Kind: KindText},
		{Name: "Nombre producto", Kind: KindText},
		{Name: "Categoria", Kind: KindText},
		{Name: "Marca", Kind: KindText},
		{Name: "Valor unitario", Kind: KindDecimal},
		{Name: "Stock", Kind: KindInteger},
	},
	KeyIndex:   0,
	PriceIndex: 4,
}

// SchemaFor returns the schema registered under a variant name.
func SchemaFor(variant string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case VariantCatalog, "":
		return Catalog, nil
	case VariantInventory:
		return Inventory, nil
	default:
		return Schema{}, fmt.Errorf("unknown table variant %q (want %q or %q)", variant, VariantCatalog, VariantInventory)
	}
}

// Width returns the number of columns.
func (s Schema) Width() int {
	return len(s.Fields)
}

// Headers returns the column names in order.
func (s Schema) Headers() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// KeyField returns the key column.
func (s Schema) KeyField() Field {
	return s.Fields[s.KeyIndex]
}

// NumericKey reports whether keys must be made of digits.
func (s Schema) NumericKey() bool {
	return s.KeyField().Kind == KindInteger
}

// ValidateValues checks a row of at least Width values: the key must be
// present (and numeric when the key column is an integer) and every numeric
// column must parse. line is used for error messages only.
func (s Schema) ValidateValues(values []string, line int) error {
	if len(values) < s.Width() {
		return &ValidationError{
			Row:     line,
			Message: fmt.Sprintf("expected %d columns, got %d", s.Width(), len(values)),
		}
	}

	key := strings.TrimSpace(values[s.KeyIndex])
	if key == "" {
		return &ValidationError{Row: line, Field: s.KeyField().Name, Message: "empty key"}
	}
	if s.NumericKey() && !IsNumericKey(key) {
		return &ValidationError{Row: line, Field: s.KeyField().Name, Value: key, Message: "key is not numeric"}
	}

	for i, f := range s.Fields {
		if i == s.KeyIndex {
			continue
		}
		v := values[i]
		var err error
		switch f.Kind {
		case KindDecimal:
			_, err = ParseDecimal(v)
		case KindInteger:
			_, err = ParseInteger(v)
		}
		if err != nil {
			return &ValidationError{Row: line, Field: f.Name, Value: strings.TrimSpace(v), Message: "not a valid number"}
		}
	}
	return nil
}

// FieldsEqual compares one column of two records according to its kind.
// Values that do not parse as numbers fall back to trimmed text comparison.
func (s Schema) FieldsEqual(i int, a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch s.Fields[i].Kind {
	case KindDecimal:
		da, errA := ParseDecimal(a)
		db, errB := ParseDecimal(b)
		if errA == nil && errB == nil {
			return da.Equal(db)
		}
	case KindInteger:
		ia, errA := ParseInteger(a)
		ib, errB := ParseInteger(b)
		if errA == nil && errB == nil {
			return ia == ib
		}
	}
	return a == b
}

// Diff returns the names of the columns that differ between two records.
func (s Schema) Diff(a, b Record) []string {
	var changed []string
	for i, f := range s.Fields {
		if !s.FieldsEqual(i, a.Value(i), b.Value(i)) {
			changed = append(changed, f.Name)
		}
	}
	return changed
}
