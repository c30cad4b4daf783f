// Package config provides configuration management for catalog-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Catalog: page path, table variant, marker id, price formatting, backups
//   - Spreadsheet: workbook path, sheet, header row, export path
//   - Images: image folder, recursion, stem mode
//   - Server: HTTP server settings (port, API key)
//   - Database: inventory database connection
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags. Environment variables use the
// upper-cased key path, e.g. CATALOG_VARIANT or STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	schema, err := cfg.Catalog.Schema()
package config
