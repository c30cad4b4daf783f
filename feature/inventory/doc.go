// Package inventory reads the authoritative product table from SQL.
//
// A Profile names the table and maps the logical columns (code, name,
// category, brand, unit_price, stock, position) onto it. Source queries the
// table through GORM, orders rows by position and code, and builds a
// validated record set for either table variant. Prices are read as
// decimals, so "1500.00" in the database compares equal to "1.500" in the
// page.
package inventory
