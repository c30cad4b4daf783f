package reconcile

import (
	"context"

	"catalog-sync/core/record"
)

// Source loads the authoritative record set.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string

	// Load reads every record. Duplicate or empty keys are errors.
	Load(ctx context.Context, schema record.Schema) (*record.RecordSet, error)
}

// StaticSource serves a fixed set of records. Handy for tests and for
// callers that already hold the records.
type StaticSource struct {
	Label   string
	Records []record.Record
}

// Name returns the label.
func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// Load builds a record set from the stored records.
func (s *StaticSource) Load(_ context.Context, schema record.Schema) (*record.RecordSet, error) {
	return record.BuildRecordSet(schema, s.Name(), s.Records)
}
