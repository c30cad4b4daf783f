package tsv

import (
	"fmt"
	"regexp"
	"strings"

	"catalog-sync/core/record"
)

const (
	// DefaultMarkerID is the id attribute of the element holding the table.
	DefaultMarkerID = "productos-tsv"
	// DefaultSampleRows bounds how many data rows are validated field by field.
	DefaultSampleRows = 50
)

// Row is one non-blank data line split into fields.
type Row struct {
	Line int      `json:"line"`
	Cols []string `json:"cols"`
}

// Table is the parsed, validated table region of a document.
type Table struct {
	OpenTag  string
	CloseTag string

	// Start and End are byte offsets of the inner region within the document.
	Start int
	End   int

	Inner   string
	Cleaned string

	Header       []string
	HeaderLine   string
	FirstRowLine string
	Rows         []Row
}

// Parser validates table regions against a schema.
type Parser struct {
	schema     record.Schema
	markerID   string
	sampleRows int
	marker     *regexp.Regexp
}

// Option configures a Parser.
type Option func(*Parser)

// WithMarkerID overrides the id attribute searched for.
func WithMarkerID(id string) Option {
	return func(p *Parser) {
		if id != "" {
			p.markerID = id
		}
	}
}

// WithSampleRows overrides how many data rows are validated.
func WithSampleRows(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.sampleRows = n
		}
	}
}

// NewParser creates a parser for the given schema.
func NewParser(schema record.Schema, opts ...Option) *Parser {
	p := &Parser{
		schema:     schema,
		markerID:   DefaultMarkerID,
		sampleRows: DefaultSampleRows,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.marker = regexp.MustCompile(
		`(?i)(<pre\b[^>]*\bid\s*=\s*["']` + regexp.QuoteMeta(p.markerID) + `["'][^>]*>)([\s\S]*?)(</pre>)`,
	)
	return p
}

// Schema returns the parser's schema.
func (p *Parser) Schema() record.Schema {
	return p.schema
}

// MarkerID returns the id attribute searched for.
func (p *Parser) MarkerID() string {
	return p.markerID
}

// Locate finds the single marker element in doc and returns a Table with only
// the tag and offset fields set.
func (p *Parser) Locate(doc string) (*Table, error) {
	matches := p.marker.FindAllStringSubmatchIndex(doc, -1)
	switch len(matches) {
	case 0:
		return nil, record.NewStructureError(fmt.Sprintf(`no <pre id=%q> element found`, p.markerID))
	case 1:
	default:
		return nil, record.NewStructureError(fmt.Sprintf(`found %d <pre id=%q> elements, expected exactly one`, len(matches), p.markerID))
	}

	m := matches[0]
	return &Table{
		OpenTag:  doc[m[2]:m[3]],
		Start:    m[4],
		End:      m[5],
		Inner:    doc[m[4]:m[5]],
		CloseTag: doc[m[6]:m[7]],
	}, nil
}

// Parse locates the table in doc, validates it and splits its rows.
func (p *Parser) Parse(doc string) (*Table, error) {
	t, err := p.Locate(doc)
	if err != nil {
		return nil, err
	}
	baseLine := strings.Count(doc[:t.Start], "\n") + 1
	if err := p.fill(t, baseLine); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseInner validates a bare table text (no surrounding markup), as found in
// the sidecar file written by a trim.
func (p *Parser) ParseInner(inner string) (*Table, error) {
	t := &Table{Inner: inner, End: len(inner)}
	if err := p.fill(t, 1); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) fill(t *Table, baseLine int) error {
	t.Cleaned = StripComments(t.Inner)
	width := p.schema.Width()
	var issues []string

	if strings.ContainsAny(t.Cleaned, "<>") {
		issues = append(issues, "table contains '<' or '>' outside comments; embedded markup would break the page")
	}

	lines := SplitLines(t.Cleaned)
	next := func(from int) int {
		for i := from; i < len(lines); i++ {
			if !IsBlank(lines[i]) {
				return i
			}
		}
		return -1
	}

	hi := next(0)
	if hi < 0 {
		return record.NewStructureError(append(issues, "table is empty")...)
	}

	t.HeaderLine = lines[hi]
	t.Header = SplitFields(lines[hi])
	if len(t.Header) < width {
		issues = append(issues, fmt.Sprintf("header has %d columns, expected at least %d", len(t.Header), width))
	} else if !record.HeadersMatch(t.Header, p.schema.Headers()) {
		issues = append(issues, fmt.Sprintf("header %q does not match expected %q",
			strings.Join(t.Header[:width], " | "), strings.Join(p.schema.Headers(), " | ")))
	}

	fi := next(hi + 1)
	if fi < 0 {
		return record.NewStructureError(append(issues, "no product rows after the header")...)
	}
	t.FirstRowLine = lines[fi]

	checked := 0
	for i := fi; i < len(lines) && checked < p.sampleRows; i++ {
		if IsBlank(lines[i]) {
			continue
		}
		if err := p.schema.ValidateValues(SplitFields(lines[i]), baseLine+i); err != nil {
			issues = append(issues, err.Error())
			break
		}
		checked++
	}

	if len(issues) > 0 {
		return record.NewStructureError(issues...)
	}

	for i := fi; i < len(lines); i++ {
		if IsBlank(lines[i]) {
			continue
		}
		t.Rows = append(t.Rows, Row{Line: baseLine + i, Cols: SplitFields(lines[i])})
	}
	return nil
}

// Records converts every data row into a record set. Unlike the sampled
// validation in Parse, every row must carry the full column count and a key.
func (t *Table) Records(schema record.Schema) (*record.RecordSet, error) {
	records := make([]record.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row.Cols) < schema.Width() {
			return nil, record.NewStructureError(fmt.Sprintf("line %d: expected %d columns, got %d", row.Line, schema.Width(), len(row.Cols)))
		}
		r := schema.NewRecord(row.Cols, row.Line)
		if r.Key == "" {
			return nil, record.NewStructureError(fmt.Sprintf("line %d: empty key", row.Line))
		}
		records = append(records, r)
	}
	return record.BuildRecordSet(schema, "document", records)
}

// Column returns column i of every row that has it.
func (t *Table) Column(i int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if i < len(row.Cols) {
			out = append(out, row.Cols[i])
		}
	}
	return out
}
