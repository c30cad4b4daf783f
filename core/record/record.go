package record

import (
	"strings"
)

// Record is one table row in schema column order.
type Record struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	Line   int      `json:"line,omitempty"` // source line or row number
}

// Value returns column i, or "" when the record is short.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// NewRecord builds a record from the first Width values of a row. The key is
// taken from the key column and trimmed.
func (s Schema) NewRecord(values []string, line int) Record {
	vals := make([]string, s.Width())
	copy(vals, values)
	return Record{
		Key:    strings.TrimSpace(vals[s.KeyIndex]),
		Values: vals,
		Line:   line,
	}
}

// Product is the named view of a record, independent of the variant.
// Catalog records have no stock; their id is stored in Code.
type Product struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	UnitPrice string `json:"unit_price"`
	Stock     string `json:"stock,omitempty"`
}

// FromProduct maps a product onto the schema's column order.
func (s Schema) FromProduct(p Product, line int) Record {
	var values []string
	switch s.Name {
	case VariantInventory:
		values = []string{p.Code, p.Name, p.Category, p.Brand, p.UnitPrice, p.Stock}
	default:
		values = []string{p.Name, p.Category, p.Brand, p.UnitPrice, p.Code}
	}
	return s.NewRecord(values, line)
}

// ToProduct maps a record back to its named view.
func (s Schema) ToProduct(r Record) Product {
	switch s.Name {
	case VariantInventory:
		return Product{
			Code:      r.Key,
			Name:      strings.TrimSpace(r.Value(1)),
			Category:  strings.TrimSpace(r.Value(2)),
			Brand:     strings.TrimSpace(r.Value(3)),
			UnitPrice: strings.TrimSpace(r.Value(4)),
			Stock:     strings.TrimSpace(r.Value(5)),
		}
	default:
		return Product{
			Code:      r.Key,
			Name:      strings.TrimSpace(r.Value(0)),
			Category:  strings.TrimSpace(r.Value(1)),
			Brand:     strings.TrimSpace(r.Value(2)),
			UnitPrice: strings.TrimSpace(r.Value(3)),
		}
	}
}

// StockValue returns the parsed stock of an inventory product, or 0.
func (p Product) StockValue() int64 {
	if p.Stock == "" {
		return 0
	}
	n, err := ParseInteger(p.Stock)
	if err != nil {
		return 0
	}
	return n
}
