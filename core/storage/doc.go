// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that catalog documents, their backups and
// exported workbooks can live in an S3 compatible bucket instead of the local
// filesystem. Both AWS S3 and self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the target bucket.
//   - PutObject / GetObject / StatObject: document content and metadata.
//   - CopyObject: server-side copies used for timestamped backups.
//   - ListObjects / RemoveObjects: backup listing and pruning.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
