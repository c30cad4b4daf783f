package config

import (
	"reflect"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/record"
	"catalog-sync/core/server"
	"catalog-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Catalog holds settings for the catalog page and its table.
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Spreadsheet holds settings for workbook sources and exports.
	Spreadsheet SpreadsheetConfig `mapstructure:"spreadsheet"`
	// Images holds settings for the image folder source and code assignment.
	Images ImagesConfig `mapstructure:"images"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the inventory database.
	Database database.Config `mapstructure:"database"`
}

// CatalogConfig describes the catalog page.
type CatalogConfig struct {
	// Variant selects the table layout: catalog (5 columns) or inventory (6 columns).
	Variant string `mapstructure:"variant" default:"catalog"`
	// Document is the page path, or object name when storage is enabled.
	Document string `mapstructure:"document" default:"catalogo.html"`
	// MarkerID is the id attribute of the <pre> element holding the table.
	MarkerID string `mapstructure:"marker_id" default:"productos-tsv"`
	// SampleRows bounds how many rows are validated field by field.
	SampleRows int `mapstructure:"sample_rows" default:"50"`
	// FormatPrices re-renders prices in the style found in the page.
	FormatPrices bool `mapstructure:"format_prices" default:"true"`
	// Backup copies the page before it is replaced.
	Backup bool `mapstructure:"backup" default:"true"`
}

// SpreadsheetConfig describes workbook sources and exports.
type SpreadsheetConfig struct {
	// Path is the workbook read by sync.
	Path string `mapstructure:"path" default:"productos.xlsx"`
	// Sheet is the preferred sheet; the first sheet is used when it is absent.
	Sheet string `mapstructure:"sheet" default:"Catalogo"`
	// HeaderRow is the 1-based row holding column names.
	HeaderRow int `mapstructure:"header_row" default:"1"`
	// Delimiter separates fields of a .csv source; empty detects it.
	Delimiter string `mapstructure:"delimiter"`
	// ExportPath is where export writes; existing files are never overwritten.
	ExportPath string `mapstructure:"export_path" default:"productos.xlsx"`
}

// ImagesConfig describes the product image folder.
type ImagesConfig struct {
	// Dir is the folder scanned for product images.
	Dir string `mapstructure:"dir" default:"imagenes"`
	// Recursive includes subfolders.
	Recursive bool `mapstructure:"recursive" default:"false"`
	// StemMode is what rename-from-source puts in file names: code, name or both.
	StemMode string `mapstructure:"stem_mode" default:"both"`
}

// Schema returns the record schema selected by the variant.
func (c CatalogConfig) Schema() (record.Schema, error) {
	return record.SchemaFor(c.Variant)
}

// LoadConfig loads configuration from environment variables, a .env file and
// an optional config.yaml in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 2. Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
