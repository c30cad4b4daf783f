package inventory

import (
	"fmt"
	"strings"
)

// Logical column names.
const (
	ColCode      = "code"
	ColName      = "name"
	ColCategory  = "category"
	ColBrand     = "brand"
	ColUnitPrice = "unit_price"
	ColStock     = "stock"
	ColPosition  = "position"
)

// Profile maps the logical product columns onto an actual table.
type Profile struct {
	// Table is the products table name.
	Table string

	// Columns maps logical names to column names. ColPosition may be empty
	// when the table has no ordering column.
	Columns map[string]string
}

// DefaultProfile returns the profile of a table using the logical names.
func DefaultProfile(table string) Profile {
	if table == "" {
		table = "products"
	}
	return Profile{
		Table: table,
		Columns: map[string]string{
			ColCode:      "code",
			ColName:      "name",
			ColCategory:  "category",
			ColBrand:     "brand",
			ColUnitPrice: "unit_price",
			ColStock:     "stock",
			ColPosition:  "position",
		},
	}
}

// Column returns the column mapped to a logical name.
func (p Profile) Column(logical string) string {
	return p.Columns[logical]
}

// Required returns the columns the table must have.
func (p Profile) Required() []string {
	var cols []string
	for _, logical := range []string{ColCode, ColName, ColCategory, ColBrand, ColUnitPrice, ColStock} {
		if c := p.Column(logical); c != "" {
			cols = append(cols, strings.ToLower(c))
		}
	}
	return cols
}

// selectList aliases every mapped column to its logical name.
func (p Profile) selectList() string {
	parts := make([]string, 0, 7)
	for _, logical := range []string{ColCode, ColName, ColCategory, ColBrand, ColUnitPrice, ColStock, ColPosition} {
		col := p.Column(logical)
		switch {
		case col == "" && logical == ColPosition:
			parts = append(parts, "0 AS "+logical)
		case col == "":
			parts = append(parts, "NULL AS "+logical)
		default:
			parts = append(parts, fmt.Sprintf("`%s` AS %s", col, logical))
		}
	}
	return strings.Join(parts, ", ")
}
