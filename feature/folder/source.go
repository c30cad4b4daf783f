package folder

import (
	"context"
	"fmt"
	"path/filepath"

	"catalog-sync/core/codes"
	"catalog-sync/core/record"

	"go.uber.org/zap"
)

// Source reads records from image file names.
type Source struct {
	dir       string
	recursive bool
	logger    *zap.Logger

	skipped []string
}

// NewSource creates a folder source.
func NewSource(dir string, recursive bool, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{dir: dir, recursive: recursive, logger: logger}
}

// Name returns the folder name.
func (s *Source) Name() string {
	return filepath.Base(filepath.Clean(s.dir))
}

// Skipped returns the images left out by the last Load.
func (s *Source) Skipped() []string {
	return append([]string(nil), s.skipped...)
}

// Load scans the folder and builds one record per coded image.
func (s *Source) Load(ctx context.Context, schema record.Schema) (*record.RecordSet, error) {
	paths, err := codes.ScanImages(s.dir, s.recursive)
	if err != nil {
		return nil, err
	}

	s.skipped = nil
	records := make([]record.Record, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		product := codes.ParseFilename(p)
		if !codes.LooksLikeProductCode(codes.ExtractCodeKey(codes.Stem(p))) {
			s.skipped = append(s.skipped, p)
			continue
		}

		r := schema.FromProduct(product, i+1)
		if err := schema.ValidateValues(r.Values, i+1); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		records = append(records, r)
	}

	if len(s.skipped) > 0 {
		s.logger.Warn("Images without product code skipped",
			zap.String("dir", s.dir),
			zap.Int("count", len(s.skipped)))
	}

	return record.BuildRecordSet(schema, s.Name(), records)
}
