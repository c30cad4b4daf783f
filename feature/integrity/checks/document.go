package checks

import (
	"context"
	"errors"

	"catalog-sync/core/document"
	"catalog-sync/core/record"
	"catalog-sync/core/tsv"
	"catalog-sync/feature/trim"
)

// DocumentReport describes the catalog page.
type DocumentReport struct {
	Name   string     `json:"name"`
	State  trim.State `json:"state"`
	Header []string   `json:"header,omitempty"`
	Rows   int        `json:"rows"`
	Issues []string   `json:"issues"`
}

// OK reports whether the page holds a complete, valid table.
func (r *DocumentReport) OK() bool {
	return r.State == trim.StateComplete && len(r.Issues) == 0
}

// CheckDocument parses the page and validates every row, not just the
// sample the parser looks at. Only read failures are returned as errors.
func CheckDocument(ctx context.Context, store document.Store, parser *tsv.Parser, name string) (*DocumentReport, error) {
	report := &DocumentReport{Name: name, State: trim.StateInvalid, Issues: []string{}}

	doc, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	table, err := parser.Parse(doc.Text)
	if err != nil {
		var se *record.StructureError
		if errors.As(err, &se) {
			report.Issues = append(report.Issues, se.Issues...)
		} else {
			report.Issues = append(report.Issues, err.Error())
		}
		return report, nil
	}

	report.Header = table.Header
	report.Rows = len(table.Rows)
	if trim.IsTrimmed(table.Cleaned) {
		report.State = trim.StateTrimmed
		return report, nil
	}
	report.State = trim.StateComplete

	if _, err := table.Records(parser.Schema()); err != nil {
		report.Issues = append(report.Issues, err.Error())
	}
	return report, nil
}
