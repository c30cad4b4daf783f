package trim

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"catalog-sync/core/document"
	"catalog-sync/core/record"
	"catalog-sync/core/tsv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrAlreadyTrimmed is returned by Strip when there is nothing past the first product.
	ErrAlreadyTrimmed = errors.New("document is already trimmed")
	// ErrMissingSidecar is returned by Restore when a sidecar file is absent.
	ErrMissingSidecar = errors.New("sidecar file not found")
	// ErrMetaVersion is returned by Restore for unknown metadata versions.
	ErrMetaVersion = errors.New("unknown metadata version")
	// ErrFingerprint is returned by Restore when the page does not match its metadata.
	ErrFingerprint = errors.New("header or first product does not match the saved metadata")
)

// restoreSampleLines bounds how many saved rows are checked before a restore.
const restoreSampleLines = 5

// StripResult names the files written by Strip.
type StripResult struct {
	StrippedName string `json:"stripped_name"`
	TableName    string `json:"table_name"`
	MetaName     string `json:"meta_name"`
	RemovedRows  int    `json:"removed_rows"`
}

// RestoreResult reports what Restore did.
type RestoreResult struct {
	Name            string `json:"name"`
	RestoredRows    int    `json:"restored_rows"`
	AlreadyComplete bool   `json:"already_complete"`
}

// Service trims and restores pages held in a document store.
type Service struct {
	store  document.Store
	parser *tsv.Parser
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a trim service.
func NewService(store document.Store, parser *tsv.Parser, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, parser: parser, logger: logger, now: time.Now}
}

// Describe reports whether the page at name is complete, trimmed or invalid.
// For invalid pages the validation error is returned as well.
func (s *Service) Describe(ctx context.Context, name string) (State, error) {
	doc, err := s.store.Read(ctx, name)
	if err != nil {
		return StateInvalid, err
	}
	table, err := s.parser.Parse(doc.Text)
	if err != nil {
		return StateInvalid, err
	}
	if IsTrimmed(table.Cleaned) {
		return StateTrimmed, nil
	}
	return StateComplete, nil
}

// Strip writes a trimmed copy of source plus its sidecars. The source is
// never modified.
func (s *Service) Strip(ctx context.Context, source string) (*StripResult, error) {
	doc, err := s.store.Read(ctx, source)
	if err != nil {
		return nil, err
	}
	table, err := s.parser.Parse(doc.Text)
	if err != nil {
		return nil, err
	}

	kept, removed := SplitKept(table.Cleaned)
	if strings.TrimSpace(removed) == "" {
		return nil, ErrAlreadyTrimmed
	}

	stripped, tableName, metaName, err := s.freeNames(ctx, StrippedName(source))
	if err != nil {
		return nil, err
	}

	removedRows := 0
	for _, ln := range tsv.SplitLines(removed) {
		if !tsv.IsBlank(ln) {
			removedRows++
		}
	}

	meta := Meta{
		Version:      MetaVersion,
		CreatedAt:    s.now().Truncate(time.Second),
		SourcePath:   source,
		StrippedPath: stripped,
		TablePath:    tableName,
		HeaderLine:   table.HeaderLine,
		FirstRowLine: table.FirstRowLine,
		RemovedRows:  removedRows,
	}
	metaText, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	sidecar := &document.Document{Encoding: document.EncodingUTF8}
	if _, err := s.store.Write(ctx, tableName, sidecar.WithText(removed), document.WriteOptions{}); err != nil {
		return nil, err
	}
	if _, err := s.store.Write(ctx, metaName, sidecar.WithText(string(metaText)), document.WriteOptions{}); err != nil {
		return nil, err
	}

	text := doc.Text[:table.Start] + kept + doc.Text[table.End:]
	if _, err := s.store.Write(ctx, stripped, doc.WithText(text), document.WriteOptions{}); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog trimmed",
		zap.String("source", source),
		zap.String("stripped", stripped),
		zap.Int("removed_rows", removedRows))

	return &StripResult{
		StrippedName: stripped,
		TableName:    tableName,
		MetaName:     metaName,
		RemovedRows:  removedRows,
	}, nil
}

// Restore appends the saved rows to a trimmed page in place.
func (s *Service) Restore(ctx context.Context, stripped string) (*RestoreResult, error) {
	tableName, metaName := SidecarNames(stripped)
	for _, name := range []string{metaName, tableName} {
		ok, err := s.store.Exists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSidecar, name)
		}
	}

	metaDoc, err := s.store.Read(ctx, metaName)
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := yaml.Unmarshal([]byte(metaDoc.Text), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", metaName, err)
	}
	if meta.Version != MetaVersion {
		return nil, fmt.Errorf("%w: %d", ErrMetaVersion, meta.Version)
	}

	doc, err := s.store.Read(ctx, stripped)
	if err != nil {
		return nil, err
	}
	table, err := s.parser.Parse(doc.Text)
	if err != nil {
		return nil, err
	}

	kept, rest := SplitKept(table.Cleaned)
	if strings.TrimSpace(rest) != "" {
		return &RestoreResult{Name: stripped, AlreadyComplete: true}, nil
	}

	if record.NormalizeHeader(meta.HeaderLine) != record.NormalizeHeader(table.HeaderLine) ||
		record.NormalizeHeader(meta.FirstRowLine) != record.NormalizeHeader(table.FirstRowLine) {
		return nil, ErrFingerprint
	}

	saved, err := s.store.Read(ctx, tableName)
	if err != nil {
		return nil, err
	}
	rows, err := s.checkSaved(saved.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tableName, err)
	}

	text := doc.Text[:table.Start] + kept + saved.Text + doc.Text[table.End:]
	if _, err := s.store.Write(ctx, stripped, doc.WithText(text), document.WriteOptions{}); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog restored", zap.String("document", stripped), zap.Int("rows", rows))
	return &RestoreResult{Name: stripped, RestoredRows: rows}, nil
}

// checkSaved validates the first saved rows and counts them all.
func (s *Service) checkSaved(text string) (int, error) {
	schema := s.parser.Schema()
	var rows []string
	for _, ln := range tsv.SplitLines(text) {
		if !tsv.IsBlank(ln) {
			rows = append(rows, ln)
		}
	}
	if len(rows) == 0 {
		return 0, record.NewStructureError("saved table is empty, nothing to restore")
	}

	for i, ln := range rows[:min(len(rows), restoreSampleLines)] {
		cols := tsv.SplitFields(ln)
		if len(cols) < schema.Width() {
			return 0, record.NewStructureError(fmt.Sprintf("saved row %d has %d columns, expected %d", i+1, len(cols), schema.Width()))
		}
		key := strings.TrimSpace(cols[schema.KeyIndex])
		if key == "" || (schema.NumericKey() && !record.IsNumericKey(key)) {
			return 0, record.NewStructureError(fmt.Sprintf("saved row %d has an invalid key %q", i+1, key))
		}
	}
	return len(rows), nil
}

// freeNames returns the first stripped name whose page and sidecars are all
// unused, trying "base (n).ext" after the default.
func (s *Service) freeNames(ctx context.Context, stripped string) (string, string, string, error) {
	ext := filepath.Ext(stripped)
	base := strings.TrimSuffix(stripped, ext)
	candidate := stripped
	for n := 1; ; n++ {
		tableName, metaName := SidecarNames(candidate)
		taken := false
		for _, name := range []string{candidate, tableName, metaName} {
			ok, err := s.store.Exists(ctx, name)
			if err != nil {
				return "", "", "", err
			}
			if ok {
				taken = true
				break
			}
		}
		if !taken {
			return candidate, tableName, metaName, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}
