package spreadsheet

import (
	"bytes"
	"context"
	"path/filepath"

	"catalog-sync/core/record"
)

// Source reads the authoritative table from a workbook or a CSV export on disk.
type Source struct {
	path string
	opts Options
}

// NewSource creates a workbook source.
func NewSource(path string, opts Options) *Source {
	return &Source{path: path, opts: opts}
}

// Name returns the workbook file name.
func (s *Source) Name() string {
	return filepath.Base(s.path)
}

// Load reads the workbook.
func (s *Source) Load(ctx context.Context, schema record.Schema) (*record.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if IsCSV(s.path) {
		return ReadCSVFile(s.path, schema, s.opts)
	}
	return ReadFile(s.path, schema, s.opts)
}

// BytesSource reads the table from an in-memory workbook or CSV, such as an
// upload. The name decides the format.
type BytesSource struct {
	name string
	data []byte
	opts Options
}

// NewBytesSource creates a source over workbook bytes.
func NewBytesSource(name string, data []byte, opts Options) *BytesSource {
	return &BytesSource{name: name, data: data, opts: opts}
}

// Name returns the upload name.
func (s *BytesSource) Name() string {
	return s.name
}

// Load reads the workbook bytes.
func (s *BytesSource) Load(ctx context.Context, schema record.Schema) (*record.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if IsCSV(s.name) {
		return ReadCSV(bytes.NewReader(s.data), s.name, schema, s.opts)
	}
	return Read(bytes.NewReader(s.data), s.name, schema, s.opts)
}
