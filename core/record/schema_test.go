package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeHeader tests case, accent and whitespace folding.
func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "categoria", NormalizeHeader("  Categoría "))
	assert.Equal(t, "nombre producto", NormalizeHeader("NOMBRE\t  Producto"))
	assert.Equal(t, "codigo", NormalizeHeader("Código"))
	assert.Equal(t, "", NormalizeHeader("   "))
}

// TestHeadersMatch tests prefix matching of header rows.
func TestHeadersMatch(t *testing.T) {
	assert.True(t, HeadersMatch([]string{"nombre producto", "CATEGORÍA", "marca", "valor unitario", "ID", "extra"}, Catalog.Headers()))
	assert.False(t, HeadersMatch([]string{"nombre producto", "categoria"}, Catalog.Headers()))
	assert.False(t, HeadersMatch(Inventory.Headers(), Catalog.Headers()))
}

// TestSchemaFor tests variant lookup.
func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor("Inventory")
	require.NoError(t, err)
	assert.Equal(t, 6, s.Width())
	assert.Equal(t, "Codigo", s.KeyField().Name)

	s, err = SchemaFor("")
	require.NoError(t, err)
	assert.Equal(t, VariantCatalog, s.Name)
	assert.True(t, s.NumericKey())

	_, err = SchemaFor("unknown")
	assert.Error(t, err)
}

// TestValidateValues tests row validation for both variants.
func TestValidateValues(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		values  []string
		wantErr bool
	}{
		{"catalog ok", Catalog, []string{"Mesa", "Muebles", "Acme", "40.000", "12"}, false},
		{"catalog short", Catalog, []string{"Mesa", "Muebles"}, true},
		{"catalog empty key", Catalog, []string{"Mesa", "Muebles", "Acme", "40.000", " "}, true},
		{"catalog alpha key", Catalog, []string{"Mesa", "Muebles", "Acme", "40.000", "A12"}, true},
		{"catalog bad price", Catalog, []string{"Mesa", "Muebles", "Acme", "gratis", "12"}, true},
		{"inventory ok", Inventory, []string{"A-1", "Mesa", "Muebles", "Acme", "1.234,50", "3"}, false},
		{"inventory bad stock", Inventory, []string{"A-1", "Mesa", "Muebles", "Acme", "10", "none"}, true},
		{"inventory negative stock", Inventory, []string{"A-1", "Mesa", "Muebles", "Acme", "10", "-5"}, false},
		{"inventory fractional stock", Inventory, []string{"A-1", "Mesa", "Muebles", "Acme", "10", "5.5"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.ValidateValues(tt.values, 3)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestSchemaDiff tests field comparison by kind.
func TestSchemaDiff(t *testing.T) {
	a := Inventory.NewRecord([]string{"A-1", "Mesa ", "Muebles", "Acme", "40.000", "3"}, 0)
	b := Inventory.NewRecord([]string{"A-1", "Mesa", "Muebles", "Acme", "40000", "03"}, 0)
	assert.Empty(t, Inventory.Diff(a, b))

	c := Inventory.NewRecord([]string{"A-1", "Mesa", "Sillas", "Acme", "41000", "3"}, 0)
	assert.Equal(t, []string{"Categoria", "Valor unitario"}, Inventory.Diff(a, c))

	negative := Inventory.NewRecord([]string{"A-1", "Mesa ", "Muebles", "Acme", "40.000", "-3"}, 0)
	assert.Equal(t, []string{"Stock"}, Inventory.Diff(a, negative))
	assert.False(t, Inventory.FieldsEqual(5, "5", "-5"))
	assert.False(t, Inventory.FieldsEqual(5, "5", "0.5"))
	assert.True(t, Inventory.FieldsEqual(5, "1.000", "1000"))
}

// TestProductMapping tests conversion between records and products.
func TestProductMapping(t *testing.T) {
	p := Product{Code: "15", Name: "Mesa", Category: "Muebles", Brand: "Acme", UnitPrice: "100", Stock: "4"}

	r := Catalog.FromProduct(p, 2)
	assert.Equal(t, "15", r.Key)
	assert.Equal(t, []string{"Mesa", "Muebles", "Acme", "100", "15"}, r.Values)
	back := Catalog.ToProduct(r)
	assert.Equal(t, "", back.Stock)
	assert.Equal(t, "Mesa", back.Name)

	r = Inventory.FromProduct(p, 2)
	assert.Equal(t, []string{"15", "Mesa", "Muebles", "Acme", "100", "4"}, r.Values)
	assert.Equal(t, p, Inventory.ToProduct(r))
	assert.Equal(t, int64(4), p.StockValue())
}
