// Package tsv locates and validates the tab-separated product table embedded
// in a catalog HTML page.
//
// The table lives inside a single element such as
//
//	<pre id="productos-tsv">
//	Nombre producto	Categoria	Marca	Valor unitario	id
//	Mesa	Muebles	Acme	40.000	1
//	</pre>
//
// Parser.Parse finds exactly one marker element, strips HTML comments from its
// content, validates the header against a record.Schema and checks a bounded
// sample of data rows. The resulting Table records the byte offsets of the
// inner region so that a regenerated table can be spliced back without
// touching any other byte of the page.
package tsv
