package spreadsheet

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalog-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeBook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

// TestReadFile_FlexibleHeader tests that columns are matched by name in any
// order, extra columns are ignored and blank rows are skipped.
func TestReadFile_FlexibleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")
	writeBook(t, path, "Catalogo", [][]any{
		{"ID", "Notas", "Marca", "nombre  PRODUCTO", "Categoría", "Valor Unitario"},
		{1, "x", "Natura", "Crema", "Cuidado", 40000},
		{},
		{2.0, "", "Avon", "Perfume", "Fragancias", 12.5},
	})

	set, err := ReadFile(path, record.Catalog, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, set.Keys())

	r, ok := set.Get("1")
	require.True(t, ok)
	assert.Equal(t, []string{"Crema", "Cuidado", "Natura", "40000", "1"}, r.Values)
	assert.Equal(t, 2, r.Line)

	r, _ = set.Get("2")
	assert.Equal(t, "12.5", r.Values[3])
	assert.Equal(t, 4, r.Line)
}

// TestReadFile_NumberCells tests that number cells keep their value instead
// of going through the thousands heuristic.
func TestReadFile_NumberCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")
	writeBook(t, path, "Catalogo", [][]any{
		{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id"},
		{"Crema", "Cuidado", "Natura", 12.35, 1},
		{"Jabon", "Cuidado", "Natura", 0.5, 2},
		{"Perfume", "Fragancias", "Avon", 1500, 3},
	})

	set, err := ReadFile(path, record.Catalog, Options{})
	require.NoError(t, err)

	r, _ := set.Get("1")
	assert.Equal(t, "12.35", r.Values[3])
	r, _ = set.Get("2")
	assert.Equal(t, "0.5", r.Values[3])
	r, _ = set.Get("3")
	assert.Equal(t, "1500", r.Values[3])

	path = filepath.Join(t.TempDir(), "fino.xlsx")
	writeBook(t, path, "Catalogo", [][]any{
		{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id"},
		{"Crema", "Cuidado", "Natura", 0.125, 1},
	})
	_, err = ReadFile(path, record.Catalog, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrValidation)
	assert.Contains(t, err.Error(), "decimal places")
}

func TestReadFile_FallsBackToActiveSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otro.xlsx")
	writeBook(t, path, "Hoja1", [][]any{
		{"Codigo", "Nombre producto", "Categoria", "Marca", "Valor unitario", "Stock"},
		{"A-1", "Yerba", "Almacen", "Rosamonte", "1.500", 3},
	})

	set, err := ReadFile(path, record.Inventory, Options{Sheet: "Catalogo"})
	require.NoError(t, err)
	r, ok := set.Get("A-1")
	require.True(t, ok)
	assert.Equal(t, "3", r.Values[5])
}

func TestReadFile_HeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")
	writeBook(t, path, "Catalogo", [][]any{
		{"Lista de precios"},
		{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id"},
		{"Crema", "Cuidado", "Natura", 100, 7},
	})

	set, err := ReadFile(path, record.Catalog, Options{HeaderRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, set.Keys())
}

func TestReadFile_Errors(t *testing.T) {
	header := []any{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id"}

	tests := []struct {
		name    string
		rows    [][]any
		target  error
		message string
	}{
		{
			name:    "MissingColumn",
			rows:    [][]any{{"Nombre producto", "Categoria", "Valor unitario", "id"}},
			target:  record.ErrStructure,
			message: "Marca",
		},
		{
			name:    "DuplicateColumn",
			rows:    [][]any{{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id", "ID"}},
			target:  record.ErrStructure,
			message: "duplicate required columns: id",
		},
		{
			name:    "MissingKey",
			rows:    [][]any{header, {"Crema", "Cuidado", "Natura", 100, 1}, {"Jabon", "Cuidado", "Natura", 50, ""}},
			target:  record.ErrValidation,
			message: "row 3",
		},
		{
			name:    "NonNumericPrice",
			rows:    [][]any{header, {"Crema", "Cuidado", "Natura", "consultar", 1}},
			target:  record.ErrValidation,
			message: "Valor unitario",
		},
		{
			name:    "DuplicateKeys",
			rows:    [][]any{header, {"Crema", "Cuidado", "Natura", 100, 1}, {"Jabon", "Cuidado", "Natura", 50, 1}},
			target:  record.ErrValidation,
			message: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "productos.xlsx")
			writeBook(t, path, "Catalogo", tt.rows)

			_, err := ReadFile(path, record.Catalog, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"), record.Catalog, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrIO)
}

func TestSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos.xlsx")
	writeBook(t, path, "Catalogo", [][]any{
		{"Nombre producto", "Categoria", "Marca", "Valor unitario", "id"},
		{"Crema", "Cuidado", "Natura", 100, 1},
	})

	src := NewSource(path, Options{})
	assert.Equal(t, "productos.xlsx", src.Name())
	set, err := src.Load(context.Background(), record.Catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	upload := NewBytesSource("subida.xlsx", data, Options{})
	assert.Equal(t, "subida.xlsx", upload.Name())
	set, err = upload.Load(context.Background(), record.Catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, set.Keys())

	_, err = Read(bytes.NewReader([]byte("not a workbook")), "roto.xlsx", record.Catalog, Options{})
	assert.ErrorIs(t, err, record.ErrIO)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx, record.Catalog)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapColumns(t *testing.T) {
	cols, err := MapColumns([]string{"", "id", "Marca", "MARCA extra", "Valor unitario", "Categoria", "Nombre Producto"}, record.Catalog)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 5, 2, 4, 1}, cols)
}
