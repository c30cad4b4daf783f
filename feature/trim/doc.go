// Package trim removes the product rows from a catalog page and puts them
// back later.
//
// Strip writes a copy of the page, named "<stem>.SIN_CATALOGO.html", whose
// table keeps only the header and the first product. The removed rows go to
// a "<stem>.SIN_CATALOGO.CATALOGO.tsv" sidecar and a YAML metadata sidecar
// records the header and first row. Restore checks those two lines against
// the page before appending the saved rows again, so rows are never pasted
// into the wrong page.
//
// Comments inside the table region are not kept by either operation.
package trim
