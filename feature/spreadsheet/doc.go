// Package spreadsheet reads and writes product tables as .xlsx workbooks.
//
// # Reading
//
// Read and ReadFile locate the sheet (the configured name, otherwise the
// active sheet), map the header row to the schema columns by normalized
// name and return a validated record set. Column order does not matter and
// unknown columns are ignored. A required column that appears twice is an
// error, as is a row with values but no key.
//
// Source wraps a workbook path as a reconcile.Source.
//
// # Writing
//
// Export writes a record set to a new workbook with a bold, frozen,
// filterable header row. Numeric columns are written as numbers. An existing
// file is never overwritten; the next free "name_N.xlsx" is used instead.
package spreadsheet
