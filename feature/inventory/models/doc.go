// Package models contains the GORM model of the inventory products table.
//
// Product maps the default layout (code, name, category, brand, unit_price,
// stock, position). Tables with other column names are read through an
// inventory.Profile that aliases them onto this model.
package models
