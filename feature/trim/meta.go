package trim

import (
	"path/filepath"
	"strings"
	"time"
)

// MetaVersion is the only metadata version Restore accepts.
const MetaVersion = 1

const (
	strippedInfix = ".SIN_CATALOGO"
	tableSuffix   = ".CATALOGO.tsv"
	metaSuffix    = ".CATALOGO.yaml"
)

// Meta is the metadata sidecar of a trimmed page.
type Meta struct {
	Version      int       `yaml:"version"`
	CreatedAt    time.Time `yaml:"created_at"`
	SourcePath   string    `yaml:"source_path"`
	StrippedPath string    `yaml:"stripped_path"`
	TablePath    string    `yaml:"table_path"`
	HeaderLine   string    `yaml:"header_line"`
	FirstRowLine string    `yaml:"first_row_line"`
	RemovedRows  int       `yaml:"removed_rows"`
}

// StrippedName returns the default name of the trimmed copy of source.
// Non-HTML extensions are replaced with ".html".
func StrippedName(source string) string {
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(source, ext)
	switch strings.ToLower(ext) {
	case ".html", ".htm":
	default:
		ext = ".html"
	}
	return stem + strippedInfix + ext
}

// SidecarNames returns the table and metadata sidecar names of a trimmed page.
func SidecarNames(stripped string) (table, meta string) {
	base := strings.TrimSuffix(stripped, filepath.Ext(stripped))
	return base + tableSuffix, base + metaSuffix
}
