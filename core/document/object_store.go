package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"catalog-sync/core/record"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectStore keeps documents in an object storage bucket.
// Names are object keys relative to the configured prefix.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewObjectStore creates a new ObjectStore.
func NewObjectStore(client storage.Client, bucket, prefix string, logger *zap.Logger) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the full object key for a document name.
func (s *ObjectStore) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Read downloads and decodes a document.
func (s *ObjectStore) Read(ctx context.Context, name string) (*Document, error) {
	key := s.Key(name)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, record.NewIOError("get", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, record.NewIOError("read", key, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, record.NewIOError("decode", key, err)
	}
	return doc, nil
}

// Exists reports whether the document object exists.
func (s *ObjectStore) Exists(ctx context.Context, name string) (bool, error) {
	key := s.Key(name)
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, record.NewIOError("stat", key, err)
	}
	return true, nil
}

// Write replaces the document with a single PutObject. When a backup is
// requested the current object is first copied server-side.
func (s *ObjectStore) Write(ctx context.Context, name string, doc *Document, opts WriteOptions) (*WriteResult, error) {
	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}

	key := s.Key(name)
	result := &WriteResult{Name: key, Bytes: len(data)}

	if opts.Backup {
		found, err := s.Exists(ctx, name)
		if err != nil {
			return nil, err
		}
		if found {
			backupKey := BackupName(key, s.now())
			_, err := s.client.CopyObject(ctx,
				minio.CopyDestOptions{Bucket: s.bucket, Object: backupKey},
				minio.CopySrcOptions{Bucket: s.bucket, Object: key},
			)
			if err != nil {
				return nil, record.NewIOError("backup", key, err)
			}
			result.BackupName = backupKey
		}
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/html; charset=" + doc.Encoding,
	})
	if err != nil {
		return nil, record.NewIOError("put", key, err)
	}

	s.logger.Debug("Document uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.String("backup", result.BackupName))
	return result, nil
}

// Backups lists the backup objects of a document, oldest first.
func (s *ObjectStore) Backups(ctx context.Context, name string) ([]string, error) {
	key := s.Key(name)
	prefix := key + ".bak_"

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, record.NewIOError("list", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	// Timestamps sort lexically.
	sort.Strings(keys)
	return keys, nil
}

// PruneBackups removes all but the newest keep backups of a document and
// returns how many were removed.
func (s *ObjectStore) PruneBackups(ctx context.Context, name string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	keys, err := s.Backups(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(keys) <= keep {
		return 0, nil
	}
	stale := keys[:len(keys)-keep]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, k := range stale {
		objectsCh <- minio.ObjectInfo{Key: k}
	}
	close(objectsCh)

	var failed []string
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed = append(failed, fmt.Sprintf("%s: %v", rErr.ObjectName, rErr.Err))
	}
	if len(failed) > 0 {
		return len(stale) - len(failed), record.NewIOError("prune", name, fmt.Errorf("%s", strings.Join(failed, "; ")))
	}

	s.logger.Info("Pruned document backups", zap.String("document", name), zap.Int("removed", len(stale)))
	return len(stale), nil
}
