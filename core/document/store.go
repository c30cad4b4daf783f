package document

import (
	"context"
	"time"
)

// BackupTimeLayout is appended to backup names after ".bak_".
const BackupTimeLayout = "20060102_150405"

// WriteOptions controls a replacement.
type WriteOptions struct {
	Backup bool
}

// WriteResult reports where the document and its backup ended up.
type WriteResult struct {
	Name       string `json:"name"`
	BackupName string `json:"backup_name,omitempty"`
	Bytes      int    `json:"bytes"`
}

// Store reads and atomically replaces documents by name.
type Store interface {
	Read(ctx context.Context, name string) (*Document, error)
	Write(ctx context.Context, name string, doc *Document, opts WriteOptions) (*WriteResult, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// BackupName returns the backup name for a document at time t.
func BackupName(name string, t time.Time) string {
	return name + ".bak_" + t.Format(BackupTimeLayout)
}
