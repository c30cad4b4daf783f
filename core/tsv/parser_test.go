package tsv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"catalog-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogHeader = "Nombre producto\tCategoria\tMarca\tValor unitario\tid"

func page(inner string) string {
	return "<html><body>\n<h1>Catálogo</h1>\n<pre id=\"productos-tsv\" class=\"hidden\">" + inner + "</pre>\n</body></html>\n"
}

// TestParse_Valid tests that a well-formed table is located and split.
func TestParse_Valid(t *testing.T) {
	inner := "\n" + catalogHeader + "\nMesa\tMuebles\tAcme\t40.000\t1\n\nSilla\tMuebles\tAcme\t15.000\t2\n"
	doc := page(inner)

	table, err := NewParser(record.Catalog).Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, inner, doc[table.Start:table.End])
	assert.Equal(t, `<pre id="productos-tsv" class="hidden">`, table.OpenTag)
	assert.Equal(t, "</pre>", table.CloseTag)
	assert.Equal(t, catalogHeader, table.HeaderLine)
	assert.Equal(t, "Mesa\tMuebles\tAcme\t40.000\t1", table.FirstRowLine)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2", table.Rows[1].Cols[4])
	assert.Equal(t, []string{"40.000", "15.000"}, table.Column(3))

	rs, err := table.Records(record.Catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, rs.Keys())
}

// TestParse_CaseInsensitiveMarker tests marker matching with single quotes and upper case.
func TestParse_CaseInsensitiveMarker(t *testing.T) {
	doc := "<PRE data-x='1' ID='productos-tsv'>" + catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n</PRE>"
	table, err := NewParser(record.Catalog).Parse(doc)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

// TestParse_HeaderNormalization tests accent and case-insensitive header matching.
func TestParse_HeaderNormalization(t *testing.T) {
	inner := "NOMBRE PRODUCTO\tCategoría\t Marca \tValor  Unitario\tID\tExtra\nMesa\tMuebles\tAcme\t1\t7\tx\n"
	_, err := NewParser(record.Catalog).Parse(page(inner))
	assert.NoError(t, err)
}

// TestParse_CommentsStripped tests that comments may contain markup.
func TestParse_CommentsStripped(t *testing.T) {
	inner := "<!-- <b>generated</b> -->\n" + catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n"
	table, err := NewParser(record.Catalog).Parse(page(inner))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, inner, table.Inner)
}

// TestParse_LineNumbersAfterComments tests that multi-line comments do not
// shift the reported line numbers.
func TestParse_LineNumbersAfterComments(t *testing.T) {
	inner := "\n<!-- generado\npor\nla planilla -->\n" + catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n"
	table, err := NewParser(record.Catalog).Parse(page(inner))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 8, table.Rows[0].Line)

	bad := "\n<!-- generado\npor\nla planilla -->\n" + catalogHeader + "\nMesa\tMuebles\tAcme\tgratis\t7\n"
	_, err = NewParser(record.Catalog).Parse(page(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 8:")
}

// TestParse_StructureErrors tests every rejected document shape.
func TestParse_StructureErrors(t *testing.T) {
	good := catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n"

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no marker", "<html><pre id=\"other\">x</pre></html>", "no <pre"},
		{"two markers", page(good) + page(good), "expected exactly one"},
		{"empty", page("\n  \n"), "table is empty"},
		{"markup", page(catalogHeader + "\n<b>Mesa</b>\tMuebles\tAcme\t1\t7\n"), "'<' or '>'"},
		{"short header", page("Nombre producto\tCategoria\nMesa\tMuebles\tAcme\t1\t7\n"), "header has 2 columns"},
		{"wrong header", page("Nombre\tCategoria\tMarca\tValor unitario\tid\nMesa\tMuebles\tAcme\t1\t7\n"), "does not match"},
		{"no rows", page(catalogHeader + "\n\n"), "no product rows"},
		{"short row", page(catalogHeader + "\nMesa\tMuebles\n"), "expected 5 columns"},
		{"empty key", page(catalogHeader + "\nMesa\tMuebles\tAcme\t1\t \n"), "empty key"},
		{"non numeric key", page(catalogHeader + "\nMesa\tMuebles\tAcme\t1\tX7\n"), "key is not numeric"},
		{"bad price", page(catalogHeader + "\nMesa\tMuebles\tAcme\tgratis\t7\n"), "not a valid number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(record.Catalog).Parse(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, record.ErrStructure))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestParse_SampleBound tests that only the first rows are validated field by field.
func TestParse_SampleBound(t *testing.T) {
	var b strings.Builder
	b.WriteString(catalogHeader + "\n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "P%d\tCat\tBrand\t100\t%d\n", i, i)
	}
	b.WriteString("P4\tCat\tBrand\tconsultar\t4\n")

	_, err := NewParser(record.Catalog, WithSampleRows(3)).Parse(page(b.String()))
	assert.NoError(t, err)

	_, err = NewParser(record.Catalog, WithSampleRows(4)).Parse(page(b.String()))
	assert.Error(t, err)
}

// TestRecords_RejectsShortRowsOutsideSample tests full-table checks during conversion.
func TestRecords_RejectsShortRowsOutsideSample(t *testing.T) {
	inner := catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\nbroken\n"
	table, err := NewParser(record.Catalog, WithSampleRows(1)).Parse(page(inner))
	require.NoError(t, err)

	_, err = table.Records(record.Catalog)
	assert.ErrorIs(t, err, record.ErrStructure)
}

// TestRecords_Duplicates tests duplicate keys in the document.
func TestRecords_Duplicates(t *testing.T) {
	inner := catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\nSilla\tMuebles\tAcme\t1\t7\n"
	table, err := NewParser(record.Catalog).Parse(page(inner))
	require.NoError(t, err)

	_, err = table.Records(record.Catalog)
	var dup *record.DuplicateKeyError
	assert.True(t, errors.As(err, &dup))
}

// TestParse_InventoryVariant tests the six column layout.
func TestParse_InventoryVariant(t *testing.T) {
	inner := "Codigo\tNombre producto\tCategoria\tMarca\tValor unitario\tStock\r\nA-1\tMesa\tMuebles\tAcme\t1.234,50\t3\r\n"
	table, err := NewParser(record.Inventory).Parse(page(inner))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "3", table.Rows[0].Cols[5])
}

// TestParse_CustomMarker tests a configured marker id.
func TestParse_CustomMarker(t *testing.T) {
	doc := `<pre id="stock">` + catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n</pre>"
	_, err := NewParser(record.Catalog, WithMarkerID("stock")).Parse(doc)
	assert.NoError(t, err)
	_, err = NewParser(record.Catalog).Parse(doc)
	assert.Error(t, err)
}

// TestParseInner tests validation of a bare table.
func TestParseInner(t *testing.T) {
	table, err := NewParser(record.Catalog).ParseInner(catalogHeader + "\nMesa\tMuebles\tAcme\t1\t7\n")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

// TestTextHelpers tests newline detection and line splitting.
func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "\r\n", NewlineOf("a\nb\r\nc"))
	assert.Equal(t, "\n", NewlineOf("a\nb"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\r\n\nb\n"))
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, "a \n b", StripComments("a <!-- x\ny --> b"))
	assert.Equal(t, "a\r\n\r\n\r\nb", StripComments("a<!--\r\nx\r\n-->\r\nb"))
}
