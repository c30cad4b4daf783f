package reconcile

import (
	"context"
	"fmt"

	"catalog-sync/core/document"
	"catalog-sync/core/record"
	"catalog-sync/core/tsv"
)

// ReconcileWithPlan reads the page, loads the source and returns the plan.
// It does NOT write anything; use ApplyPlan for that.
func ReconcileWithPlan(
	ctx context.Context,
	store document.Store,
	name string,
	parser *tsv.Parser,
	source Source,
	opts Options,
) (*Plan, error) {
	doc, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	newSet, err := source.Load(ctx, parser.Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source.Name(), err)
	}

	return BuildPlan(doc, parser, newSet, opts)
}

// BuildPlan diffs an already loaded page against a record set and renders
// the replacement page when anything changed.
func BuildPlan(doc *document.Document, parser *tsv.Parser, newSet *record.RecordSet, opts Options) (*Plan, error) {
	schema := parser.Schema()

	table, err := parser.Parse(doc.Text)
	if err != nil {
		return nil, err
	}

	oldSet, err := table.Records(schema)
	if err != nil {
		return nil, err
	}

	changes, err := Diff(oldSet, newSet)
	if err != nil {
		return nil, err
	}

	ropts := RenderOptions{
		Header:       table.Header,
		Newline:      doc.Newline(),
		PriceStyle:   record.DetectPriceStyle(table.Column(schema.PriceIndex)),
		FormatPrices: opts.FormatPrices,
	}

	for i := range changes.Entries {
		if after := changes.Entries[i].After; after != nil {
			rendered := RenderRecord(schema, *after, ropts)
			changes.Entries[i].After = &rendered
		}
	}

	plan := &Plan{
		Changes:    changes,
		NeedsWrite: changes.HasChanges(),
		PriceStyle: ropts.PriceStyle,
		Newline:    ropts.Newline,
	}
	if !plan.NeedsWrite {
		return plan, nil
	}

	plan.Table = RenderTable(newSet, ropts)
	plan.Document = doc.WithText(Splice(doc.Text, table, plan.Table))
	return plan, nil
}

// ApplyPlan writes the planned page.
// Requires opts.Confirmed=true and opts.DryRun=false to actually write;
// otherwise, or when the plan has nothing to write, it returns nil, nil.
func ApplyPlan(
	ctx context.Context,
	store document.Store,
	name string,
	plan *Plan,
	opts Options,
) (*document.WriteResult, error) {
	// Safety check: do not write if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return nil, nil
	}
	if plan == nil || !plan.NeedsWrite || plan.Document == nil {
		return nil, nil
	}

	res, err := store.Write(ctx, name, plan.Document, document.WriteOptions{Backup: opts.Backup})
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return res, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally writes.
func ReconcileAndApply(
	ctx context.Context,
	store document.Store,
	name string,
	parser *tsv.Parser,
	source Source,
	opts Options,
) (*Plan, *document.WriteResult, error) {
	plan, err := ReconcileWithPlan(ctx, store, name, parser, source, opts)
	if err != nil {
		return nil, nil, err
	}

	res, err := ApplyPlan(ctx, store, name, plan, opts)
	return plan, res, err
}
