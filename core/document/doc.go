// Package document reads and replaces catalog pages.
//
// A Document keeps the decoded text together with what is needed to write
// it back byte for byte: whether the file started with a UTF-8 byte order
// mark and which encoding it was read in.
//
// # Stores
//
//   - FileStore: local files. Writes go to a sibling "<name>.tmp_write" file
//     that is renamed over the target, so readers never see a partial page.
//     An optional backup "<name>.bak_YYYYMMDD_HHMMSS" is copied first.
//   - ObjectStore: an S3 compatible bucket through core/storage. A single
//     PutObject replaces the page; backups are server-side copies.
//
// Both implement Store, which is what the reconciler writes through.
package document
