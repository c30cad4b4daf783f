// Package record defines the fixed-shape product records shared by every
// table source and by the catalog document.
//
// # Schemas
//
// Two table variants are supported:
//
//   - catalog: Nombre producto, Categoria, Marca, Valor unitario, id (key = id, numeric)
//   - inventory: Codigo, Nombre producto, Categoria, Marca, Valor unitario, Stock (key = Codigo)
//
// A Schema knows its column names, which column is the key and how each
// column is compared (text, decimal or integer).
//
// # Numbers
//
// Prices are parsed with ParseDecimal, which accepts both "1.234,56" and
// "1,234.56" styles and returns a shopspring decimal. Integers (stock,
// numeric ids) keep only their digits.
//
// # Errors
//
// StructureError, ValidationError, DuplicateKeyError and IOError match the
// sentinels ErrStructure, ErrValidation and ErrIO through errors.Is.
package record
