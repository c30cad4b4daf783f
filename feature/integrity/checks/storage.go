package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MissingBucket is reported when the bucket itself is absent.
const MissingBucket = "bucket"

// StorageReport describes the bucket that holds the catalog documents.
type StorageReport struct {
	Bucket         string   `json:"bucket"`
	Missing        []string `json:"missing"`
	Document       string   `json:"document"`
	DocumentExists bool     `json:"document_exists"`
	Backups        int      `json:"backups"`
}

// OK reports whether nothing is missing and the document is present.
func (r *StorageReport) OK() bool {
	return len(r.Missing) == 0 && r.DocumentExists
}

func folderKey(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// CheckStorage inspects the bucket, the document prefix and the document
// object under key.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix, key string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Document: key, Missing: []string{}}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	folder := folderKey(prefix)
	if !exists {
		report.Missing = append(report.Missing, MissingBucket)
		if folder != "" {
			report.Missing = append(report.Missing, folder)
		}
		return report, nil
	}

	if folder != "" {
		opts := minio.ListObjectsOptions{
			Prefix:    folder,
			Recursive: false,
			MaxKeys:   1,
		}
		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}
		if !found {
			report.Missing = append(report.Missing, folder)
		}
	}

	if key == "" {
		return report, nil
	}

	if _, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		if !storage.IsNotFound(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", key, err)
		}
	} else {
		report.DocumentExists = true
	}

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: key + ".bak_", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		report.Backups++
	}
	return report, nil
}

// FixStorage creates the missing bucket and folder markers.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, item := range missing {
		if item == MissingBucket {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
				return err
			}
			logger.Info("Created missing bucket", zap.String("bucket", bucket))
			continue
		}

		folderPath := item
		if !strings.HasSuffix(folderPath, "/") {
			folderPath += "/"
		}
		_, err := client.PutObject(ctx, bucket, folderPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", item), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", item))
	}
	return nil
}
