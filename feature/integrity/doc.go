// Package integrity provides health checks for the catalog and the
// infrastructure around it.
//
// Unlike the 'catalog' package, which reconciles the page with its source,
// this package only inspects. The one exception is the storage fix, which
// creates a missing bucket or folder marker.
//
// # Checks Provided
//
//   - Document: Parses the page, reports whether it is complete or trimmed, and validates every row.
//   - Storage: Checks the bucket, the document folder and the page object, and counts backups.
//   - Database: Validates that the products table has the mapped columns with compatible types.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/document : Runs the document check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the database check.
package integrity
