// Package codes allocates free numeric product codes and implements the
// image filename convention
//
//	<code>_<name>_<category>_<brand>_<price>_<stock>.<ext>
//
// where the name itself may contain underscores.
//
// Allocate fills gaps in the range of existing codes before growing past the
// largest one, so assigning codes never renumbers existing products.
package codes
