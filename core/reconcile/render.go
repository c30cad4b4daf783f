package reconcile

import (
	"strings"

	"catalog-sync/core/record"
	"catalog-sync/core/tsv"
)

// RenderOptions controls table rendering.
type RenderOptions struct {
	// Header is the page's header row; its first Width columns are kept.
	Header []string
	// Newline terminates every line.
	Newline string
	// PriceStyle is applied to the price column when FormatPrices is set.
	PriceStyle   record.PriceStyle
	FormatPrices bool
}

// RenderRecord returns the values as they will be written: the key column
// holds the key and the price is rendered in the requested style.
func RenderRecord(schema record.Schema, r record.Record, opts RenderOptions) record.Record {
	values := make([]string, schema.Width())
	copy(values, r.Values)
	values[schema.KeyIndex] = r.Key
	if opts.FormatPrices && schema.PriceIndex >= 0 {
		values[schema.PriceIndex] = record.FormatPrice(values[schema.PriceIndex], opts.PriceStyle)
	}
	for i, v := range values {
		values[i] = strings.TrimRight(v, "\r\n")
	}
	return record.Record{Key: r.Key, Values: values, Line: r.Line}
}

// RenderTable writes the header followed by one tab separated line per
// record, in the set's order.
func RenderTable(set *record.RecordSet, opts RenderOptions) string {
	schema := set.Schema()
	nl := opts.Newline
	if nl == "" {
		nl = "\n"
	}

	header := opts.Header
	if len(header) < schema.Width() {
		header = schema.Headers()
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(strings.Join(header[:schema.Width()], "\t"), "\r\n"))
	b.WriteString(nl)
	for _, r := range set.Records() {
		b.WriteString(strings.Join(RenderRecord(schema, r, opts).Values, "\t"))
		b.WriteString(nl)
	}
	return b.String()
}

// Splice replaces the table region of doc. Every byte outside
// [table.Start, table.End) is kept.
func Splice(doc string, table *tsv.Table, inner string) string {
	var b strings.Builder
	b.Grow(len(doc) - (table.End - table.Start) + len(inner))
	b.WriteString(doc[:table.Start])
	b.WriteString(inner)
	b.WriteString(doc[table.End:])
	return b.String()
}
