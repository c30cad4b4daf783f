// Package utils provides common conversion helpers for catalog-sync.
// It includes loose any-to-value conversions used by the spreadsheet reader,
// the inventory source and HTTP query parsing.
package utils
