package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/document"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/record"
	"catalog-sync/core/tsv"
	"catalog-sync/feature/spreadsheet"

	"go.uber.org/zap"
)

var (
	// ErrNoSource is returned when no source is configured or given.
	ErrNoSource = errors.New("no source configured")
	// ErrProductNotFound is returned when a code is not in the page.
	ErrProductNotFound = errors.New("product not found")
)

// Settings holds the page and write settings of the service.
type Settings struct {
	// Document is the page name in the store.
	Document string
	// FormatPrices re-renders prices in the page's style.
	FormatPrices bool
	// Backup copies the page before it is replaced.
	Backup bool
	// KeepBackups is how many backups survive a prune. 0 keeps all.
	KeepBackups int
	// Sheet locates the table in uploaded workbooks.
	Sheet spreadsheet.Options
}

// BackupPruner is implemented by stores that can drop old backups.
type BackupPruner interface {
	PruneBackups(ctx context.Context, name string, keep int) (int, error)
}

// ApplyResult reports an apply.
type ApplyResult struct {
	Plan    *reconcile.Plan       `json:"plan"`
	Write   *document.WriteResult `json:"write,omitempty"`
	Written bool                  `json:"written"`
	Pruned  int                   `json:"pruned,omitempty"`
}

// Service handles catalog operations.
type Service struct {
	store    document.Store
	parser   *tsv.Parser
	source   reconcile.Source
	settings Settings
	logger   *zap.Logger
}

// NewService creates a new catalog service. source may be nil, in which case
// every call must pass its own.
func NewService(store document.Store, parser *tsv.Parser, source reconcile.Source, settings Settings, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		parser:   parser,
		source:   source,
		settings: settings,
		logger:   logger,
	}
}

// Settings returns the service settings.
func (s *Service) Settings() Settings {
	return s.settings
}

// Parser returns the table parser.
func (s *Service) Parser() *tsv.Parser {
	return s.parser
}

func (s *Service) pick(src reconcile.Source) (reconcile.Source, error) {
	if src != nil {
		return src, nil
	}
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.source, nil
}

func (s *Service) options(dryRun bool) reconcile.Options {
	return reconcile.Options{
		FormatPrices: s.settings.FormatPrices,
		Backup:       s.settings.Backup,
		DryRun:       dryRun,
		Confirmed:    true,
	}
}

// Plan diffs the page against src, or the configured source when src is nil.
func (s *Service) Plan(ctx context.Context, src reconcile.Source) (*reconcile.Plan, error) {
	src, err := s.pick(src)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.ReconcileWithPlan(ctx, s.store, s.settings.Document, s.parser, src, s.options(true))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Catalog plan built",
		zap.String("document", s.settings.Document),
		zap.String("source", src.Name()),
		zap.Int("added", plan.Changes.Summary.Added),
		zap.Int("modified", plan.Changes.Summary.Modified),
		zap.Int("removed", plan.Changes.Summary.Removed),
		zap.Bool("needs_write", plan.NeedsWrite))
	return plan, nil
}

// Apply plans and writes the page unless dryRun is set.
func (s *Service) Apply(ctx context.Context, src reconcile.Source, dryRun bool) (*ApplyResult, error) {
	plan, err := s.Plan(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.ApplyPlan(ctx, plan, dryRun)
}

// ApplyPlan writes an existing plan unless dryRun is set.
func (s *Service) ApplyPlan(ctx context.Context, plan *reconcile.Plan, dryRun bool) (*ApplyResult, error) {
	res, err := reconcile.ApplyPlan(ctx, s.store, s.settings.Document, plan, s.options(dryRun))
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Plan: plan, Write: res, Written: res != nil}
	if !result.Written {
		return result, nil
	}

	s.logger.Info("Catalog written",
		zap.String("document", res.Name),
		zap.String("backup", res.BackupName),
		zap.Int("bytes", res.Bytes))

	if pruner, ok := s.store.(BackupPruner); ok && s.settings.Backup && s.settings.KeepBackups > 0 {
		n, err := pruner.PruneBackups(ctx, s.settings.Document, s.settings.KeepBackups)
		if err != nil {
			s.logger.Warn("Failed to prune backups", zap.Error(err))
		}
		result.Pruned = n
	}
	return result, nil
}

// Table parses the page's table.
func (s *Service) Table(ctx context.Context) (*tsv.Table, error) {
	doc, err := s.store.Read(ctx, s.settings.Document)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(doc.Text)
}

// Products returns the records of the page.
func (s *Service) Products(ctx context.Context) (*record.RecordSet, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return table.Records(s.parser.Schema())
}

// Product returns one product of the page.
func (s *Service) Product(ctx context.Context, code string) (*record.Product, error) {
	set, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := set.Get(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	p := set.Schema().ToProduct(r)
	return &p, nil
}

// Export writes the page's table to a new workbook, keeping the page header.
func (s *Service) Export(ctx context.Context, path string, opts spreadsheet.ExportOptions) (*spreadsheet.ExportResult, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	set, err := table.Records(s.parser.Schema())
	if err != nil {
		return nil, err
	}
	if opts.Header == nil {
		opts.Header = table.Header
	}
	return spreadsheet.Export(path, set, opts)
}
