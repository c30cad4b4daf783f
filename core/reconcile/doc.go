// Package reconcile brings the product table of a catalog page in line with
// an authoritative record set.
//
// Reconciliation is key based and stateless: the table already in the page
// (old) is compared with the records from a source (new) and every
// difference becomes a ChangeEntry. The source always wins; there is no
// merge and no conflict resolution.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Engine: Diff builds the ChangeSet. Removed keys come first, ordered by
// record.CompareKeys, followed by added and modified keys in source order.
// Unchanged keys are not reported.
//
// 2. Renderer: RenderTable writes the new table (old header, one line per
// source record, the page's newline style and price style) and Splice puts
// it back between the recorded offsets of the old table region.
//
// 3. Plan / Apply: ReconcileWithPlan runs both steps without side effects.
// ApplyPlan writes the new page through a document.Store, and only when the
// caller confirmed and did not ask for a dry run.
//
// # Sources
//
// A Source loads the authoritative record set. Spreadsheets, image folders
// and the inventory database each provide one (see feature/).
//
// # Usage Example
//
//	parser := tsv.NewParser(record.Catalog)
//	plan, err := reconcile.ReconcileWithPlan(ctx, store, "catalogo.html", parser, source, opts)
//	if err != nil {
//	    return err
//	}
//	if plan.NeedsWrite {
//	    res, err := reconcile.ApplyPlan(ctx, store, "catalogo.html", plan, opts)
//	}
package reconcile
