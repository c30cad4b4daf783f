package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalog-sync/core/document"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/record"
	"catalog-sync/core/tsv"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const page = "<html>\n<body>\n" +
	"<pre id=\"productos-tsv\">\n" +
	"Nombre producto\tCategoria\tMarca\tValor unitario\tid\n" +
	"Mesa\tMuebles\tAcme\t40.000\t1\n" +
	"Silla\tMuebles\tAcme\t15.000\t2\n" +
	"</pre>\n</body>\n</html>\n"

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogo.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))
	return path
}

func staticSource(rows ...[]string) *reconcile.StaticSource {
	s := &reconcile.StaticSource{Label: "productos.xlsx"}
	for i, r := range rows {
		s.Records = append(s.Records, record.Catalog.NewRecord(r, i+2))
	}
	return s
}

func newService(t *testing.T, path string, src reconcile.Source) *catalog.Service {
	t.Helper()
	return catalog.NewService(
		document.NewFileStore(),
		tsv.NewParser(record.Catalog),
		src,
		catalog.Settings{Document: path, FormatPrices: true, Backup: true},
		zap.NewNop(),
	)
}

func TestService_PlanDoesNotWrite(t *testing.T) {
	path := writePage(t)
	svc := newService(t, path, staticSource(
		[]string{"Mesa", "Muebles", "Acme", "41000", "1"},
		[]string{"Silla", "Muebles", "Acme", "15000", "2"},
		[]string{"Vaso", "Cocina", "Cristal", "2500", "3"},
	))

	plan, err := svc.Plan(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, plan.NeedsWrite)
	assert.Equal(t, 1, plan.Changes.Summary.Added)
	assert.Equal(t, 1, plan.Changes.Summary.Modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, page, string(data))
}

func TestService_Apply(t *testing.T) {
	path := writePage(t)
	svc := newService(t, path, staticSource(
		[]string{"Mesa", "Muebles", "Acme", "41000", "1"},
	))

	res, err := svc.Apply(context.Background(), nil, false)
	require.NoError(t, err)
	require.True(t, res.Written)
	assert.NotEmpty(t, res.Write.BackupName)
	assert.Equal(t, 1, res.Plan.Changes.Summary.Removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mesa\tMuebles\tAcme\t41.000\t1\n</pre>")
	assert.NotContains(t, string(data), "Silla")

	backup, err := os.ReadFile(res.Write.BackupName)
	require.NoError(t, err)
	assert.Equal(t, page, string(backup))
}

func TestService_ApplyDryRun(t *testing.T) {
	path := writePage(t)
	svc := newService(t, path, staticSource([]string{"Mesa", "Muebles", "Acme", "41000", "1"}))

	res, err := svc.Apply(context.Background(), nil, true)
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.Nil(t, res.Write)
	assert.True(t, res.Plan.NeedsWrite)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, page, string(data))
}

func TestService_ApplyUpToDate(t *testing.T) {
	path := writePage(t)
	svc := newService(t, path, staticSource(
		[]string{"Mesa", "Muebles", "Acme", "40000", "1"},
		[]string{"Silla", "Muebles", "Acme", "15.000", "2"},
	))

	res, err := svc.Apply(context.Background(), nil, false)
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.False(t, res.Plan.NeedsWrite)
}

func TestService_NoSource(t *testing.T) {
	svc := newService(t, writePage(t), nil)

	_, err := svc.Plan(context.Background(), nil)
	assert.ErrorIs(t, err, catalog.ErrNoSource)

	plan, err := svc.Plan(context.Background(), staticSource([]string{"Mesa", "Muebles", "Acme", "40000", "1"}))
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Changes.Summary.Removed)
}

func TestService_Products(t *testing.T) {
	svc := newService(t, writePage(t), nil)

	set, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, set.Keys())

	p, err := svc.Product(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Silla", p.Name)
	assert.Equal(t, "15.000", p.UnitPrice)

	_, err = svc.Product(context.Background(), "9")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestService_Export(t *testing.T) {
	svc := newService(t, writePage(t), nil)
	out := filepath.Join(t.TempDir(), "productos.xlsx")

	res, err := svc.Export(context.Background(), out, spreadsheet.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	set, err := spreadsheet.ReadFile(res.Path, record.Catalog, spreadsheet.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, set.Keys())
}

func TestService_StructureError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roto.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
	svc := newService(t, path, staticSource())

	_, err := svc.Plan(context.Background(), nil)
	assert.ErrorIs(t, err, record.ErrStructure)
	assert.Equal(t, 422, catalog.StatusFor(err))
}
