// Package renamer renames product images in place.
//
// AssignCodes gives every image whose name does not start with a product
// code the next free numeric code, filling gaps in the source's code range
// first and continuing past its highest code after that. Codes are
// zero-padded to the widest numeric code of the source.
//
// RenameFromSource renames coded images after the product they show, using
// the product names of the authoritative table.
//
// Both operations can run as a dry run that only reports the renames. Names
// never collide: a taken name gets a "_1", "_2", ... suffix.
package renamer
