package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.Catalog.Variant)
	assert.Equal(t, "productos-tsv", cfg.Catalog.MarkerID)
	assert.Equal(t, 50, cfg.Catalog.SampleRows)
	assert.True(t, cfg.Catalog.FormatPrices)
	assert.Equal(t, "Catalogo", cfg.Spreadsheet.Sheet)
	assert.Equal(t, 1, cfg.Spreadsheet.HeaderRow)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.False(t, cfg.Storage.Enabled)

	schema, err := cfg.Catalog.Schema()
	require.NoError(t, err)
	assert.Equal(t, 5, schema.Width())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_VARIANT", "inventory")
	t.Setenv("SPREADSHEET_HEADER_ROW", "2")
	t.Setenv("STORAGE_BUCKET", "paginas")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "inventory", cfg.Catalog.Variant)
	assert.Equal(t, 2, cfg.Spreadsheet.HeaderRow)
	assert.Equal(t, "paginas", cfg.Storage.Bucket)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "catalog:\n  document: sitio/index.html\n  format_prices: false\nimages:\n  dir: fotos\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "sitio/index.html", cfg.Catalog.Document)
	assert.False(t, cfg.Catalog.FormatPrices)
	assert.Equal(t, "fotos", cfg.Images.Dir)
	assert.Equal(t, "both", cfg.Images.StemMode)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
