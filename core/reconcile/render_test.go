package reconcile

import (
	"strings"
	"testing"

	"catalog-sync/core/record"
	"catalog-sync/core/tsv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRenderTable tests header reuse, newline style and price formatting.
func TestRenderTable(t *testing.T) {
	set := catalogSet(t,
		[]string{"Mesa", "Muebles", "Acme", "40000", " 1 "},
		[]string{"Silla", "Muebles", "Acme", "1500", "2"},
	)

	out := RenderTable(set, RenderOptions{
		Header:       []string{"Nombre Producto", "Categoría", "Marca", "Valor unitario", "ID", "Notas"},
		Newline:      "\r\n",
		PriceStyle:   record.PriceStyleDot,
		FormatPrices: true,
	})

	assert.Equal(t,
		"Nombre Producto\tCategoría\tMarca\tValor unitario\tID\r\n"+
			"Mesa\tMuebles\tAcme\t40.000\t1\r\n"+
			"Silla\tMuebles\tAcme\t1.500\t2\r\n",
		out)
}

// TestRenderTable_NoFormatting tests that prices are kept when formatting is off.
func TestRenderTable_NoFormatting(t *testing.T) {
	set := catalogSet(t, []string{"Mesa", "Muebles", "Acme", "40000", "1"})
	out := RenderTable(set, RenderOptions{PriceStyle: record.PriceStyleDot})
	assert.Equal(t, "Nombre producto\tCategoria\tMarca\tValor unitario\tid\nMesa\tMuebles\tAcme\t40000\t1\n", out)
}

// TestSplice tests that only the table region changes.
func TestSplice(t *testing.T) {
	doc := "<html>\r\n<pre id=\"productos-tsv\">Nombre producto\tCategoria\tMarca\tValor unitario\tid\nA\tB\tC\t1\t1\n</pre>\r\n<footer>ñ</footer>"
	table, err := tsv.NewParser(record.Catalog).Parse(doc)
	require.NoError(t, err)

	out := Splice(doc, table, "NEW")
	assert.Equal(t, doc[:table.Start], out[:table.Start])
	assert.True(t, strings.HasSuffix(out, doc[table.End:]))
	assert.Equal(t, "<html>\r\n<pre id=\"productos-tsv\">NEW</pre>\r\n<footer>ñ</footer>", out)
}
