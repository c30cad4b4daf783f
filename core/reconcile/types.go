package reconcile

import (
	"fmt"
	"strings"

	"catalog-sync/core/document"
	"catalog-sync/core/record"
)

// ChangeType classifies a difference between the page and the source.
type ChangeType string

const (
	// ChangeAdded marks a key present only in the source.
	ChangeAdded ChangeType = "added"
	// ChangeModified marks a key whose fields differ.
	ChangeModified ChangeType = "modified"
	// ChangeRemoved marks a key present only in the page.
	ChangeRemoved ChangeType = "removed"
)

// ChangeEntry is a single reported difference.
type ChangeEntry struct {
	// Type is the kind of change.
	Type ChangeType `json:"type"`

	// Key identifies the record.
	Key string `json:"key"`

	// Before is the record as found in the page. Nil for added keys.
	Before *record.Record `json:"before,omitempty"`

	// After is the record as it will be written. Nil for removed keys.
	// Prices are already rendered in the page's style.
	After *record.Record `json:"after,omitempty"`

	// Fields lists the differing column names of a modified record.
	Fields []string `json:"fields,omitempty"`
}

// Summary provides aggregate counts for a change set.
type Summary struct {
	// Added counts keys present only in the source.
	Added int `json:"added"`

	// Modified counts keys whose fields differ.
	Modified int `json:"modified"`

	// Removed counts keys present only in the page.
	Removed int `json:"removed"`

	// Unchanged counts keys present in both with equal fields.
	Unchanged int `json:"unchanged"`

	// Total is Added + Modified + Removed.
	Total int `json:"total"`
}

// ChangeSet is the ordered result of a diff. It is never persisted.
type ChangeSet struct {
	Entries []ChangeEntry `json:"entries"`
	Summary Summary       `json:"summary"`
}

// IsEmpty reports whether no difference was found.
func (c *ChangeSet) IsEmpty() bool {
	return c == nil || len(c.Entries) == 0
}

// HasChanges reports whether at least one difference was found.
func (c *ChangeSet) HasChanges() bool {
	return !c.IsEmpty()
}

// Filter returns the entries of one type, preserving order.
func (c *ChangeSet) Filter(t ChangeType) []ChangeEntry {
	var out []ChangeEntry
	for _, e := range c.Entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// String returns a short human readable summary.
func (c *ChangeSet) String() string {
	if c.IsEmpty() {
		return "no changes"
	}
	var parts []string
	if c.Summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Summary.Added))
	}
	if c.Summary.Modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", c.Summary.Modified))
	}
	if c.Summary.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Summary.Removed))
	}
	return strings.Join(parts, ", ")
}

// Options controls reconcile behavior for rendering and writing.
type Options struct {
	// FormatPrices re-renders prices in the style detected in the page.
	FormatPrices bool

	// DryRun prevents any write if true.
	DryRun bool

	// Confirmed indicates the user accepted the change set.
	// If false, nothing is written regardless of DryRun.
	Confirmed bool

	// Backup copies the current page before it is replaced.
	Backup bool
}

// Plan contains the change set and the page that would be written.
type Plan struct {
	// Changes is the ordered change set.
	Changes *ChangeSet `json:"changes"`

	// NeedsWrite is false when the page already matches the source.
	NeedsWrite bool `json:"needs_write"`

	// PriceStyle is the thousands separator style detected in the page.
	PriceStyle record.PriceStyle `json:"price_style"`

	// Newline is the line terminator of the page.
	Newline string `json:"-"`

	// Document is the rewritten page. Nil when NeedsWrite is false.
	Document *document.Document `json:"-"`

	// Table is the rendered table region.
	Table string `json:"-"`
}
