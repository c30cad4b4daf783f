// Package catalog reconciles the catalog page with its authoritative source.
//
// The Service reads the page from a document store, loads the source, and
// returns a plan: the change set plus the rewritten page. Apply writes the
// plan, optionally after a backup, and prunes old backups when the store
// supports it. The page is the only thing ever written.
//
// # HTTP Endpoints
//
//   - POST /catalog/plan : Diff the page against the configured source, or
//     against an uploaded workbook (multipart field "workbook").
//   - POST /catalog/apply : Same as plan, then write the page (supports ?dry_run=true).
//   - GET /catalog/products : List the products of the page.
//   - GET /catalog/products/:code : Get one product of the page.
package catalog
