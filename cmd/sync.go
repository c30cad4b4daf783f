package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/folder"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/spreadsheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Source kinds accepted by --source.
const (
	sourceExcel  = "excel"
	sourceFolder = "folder"
	sourceDB     = "db"
)

var (
	// Flags for sync command
	syncSource   string
	syncPath     string
	syncDocument string
	syncDryRun   bool
	yesConfirm   bool
)

// syncCmd reconciles the page with its source.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the catalog page from its source (report + optionally write)",
	Long: `Compare the product table in the catalog page with the authoritative
source and rewrite the table when they differ.

Reports added, modified and removed products, then asks for confirmation
before the page is replaced. A timestamped backup is kept unless disabled.

Examples:
  # Sync from the configured workbook (interactive confirmation)
  sync

  # Report only
  sync --dry-run

  # Sync from an image folder with auto-confirm
  sync --source folder --path ./imagenes --yes

  # Sync from the products table
  sync --source db --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSource, "source", sourceExcel, "Source kind: excel (.xlsx or .csv path), folder or db")
	syncCmd.Flags().StringVar(&syncPath, "path", "", "Workbook, CSV or image folder (defaults from config)")
	syncCmd.Flags().StringVar(&syncDocument, "document", "", "Catalog page (defaults from config)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Force dry-run (no write even with --yes)")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the write (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

// buildSource returns the source selected by kind. The close func is never nil.
func buildSource(e *env, kind, path string) (reconcile.Source, func(), error) {
	noop := func() {}
	switch strings.ToLower(kind) {
	case sourceExcel, "xlsx", "csv", "":
		if path == "" {
			path = e.cfg.Spreadsheet.Path
		}
		return spreadsheet.NewSource(path, e.sheetOptions()), noop, nil
	case sourceFolder:
		if path == "" {
			path = e.cfg.Images.Dir
		}
		return folder.NewSource(path, e.cfg.Images.Recursive, e.log.Named("folder")), noop, nil
	case sourceDB:
		db, closeDB, err := e.connectDB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		return inventory.NewSource(db, e.profile(), e.log.Named("inventory")), closeDB, nil
	default:
		return nil, noop, fmt.Errorf("unknown source %q (want %s, %s or %s)", kind, sourceExcel, sourceFolder, sourceDB)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := loadEnv()
	if err != nil {
		return err
	}
	l := e.log
	defer l.Sync()

	src, closeSrc, err := buildSource(e, syncSource, syncPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	svc := e.catalogService(syncDocument)
	document := svc.Settings().Document

	// Step 1: Plan (always runs)
	l.Info("Planning sync...", zap.String("document", document), zap.String("source", src.Name()))
	plan, err := svc.Plan(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to plan sync: %w", err)
	}

	// Step 2: Print report
	printSyncReport(l, plan)

	if s, ok := src.(*folder.Source); ok && len(s.Skipped()) > 0 {
		l.Warn("Images without a product code were ignored", zap.Int("count", len(s.Skipped())))
	}

	// Step 3: Nothing to do
	if !plan.NeedsWrite {
		l.Info("The catalog is already up to date. No changes were made.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), "replace the catalog table") {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Writing catalog...")
	res, err := svc.ApplyPlan(ctx, plan, false)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	fields := []zap.Field{
		zap.String("document", res.Write.Name),
		zap.String("changes", plan.Changes.String()),
	}
	if res.Write.BackupName != "" {
		fields = append(fields, zap.String("backup", res.Write.BackupName))
	}
	if res.Pruned > 0 {
		fields = append(fields, zap.Int("pruned_backups", res.Pruned))
	}
	l.Info("Catalog updated", fields...)
	return nil
}

// printSyncReport prints a formatted change report using logger.
func printSyncReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Changes.Summary

	l.Info("Sync report",
		zap.Int("added", s.Added),
		zap.Int("modified", s.Modified),
		zap.Int("removed", s.Removed),
		zap.Int("unchanged", s.Unchanged),
		zap.String("price_style", string(plan.PriceStyle)),
	)

	entries := plan.Changes.Entries
	if len(entries) == 0 {
		return
	}

	// Show sample of changes (max 5 for logger)
	maxShow := min(5, len(entries))
	for _, entry := range entries[:maxShow] {
		fields := []zap.Field{
			zap.String("type", string(entry.Type)),
			zap.String("key", entry.Key),
		}
		if len(entry.Fields) > 0 {
			fields = append(fields, zap.Strings("fields", entry.Fields))
		}
		l.Info("Sample change", fields...)
	}
	if len(entries) > maxShow {
		l.Info("Additional changes not shown", zap.Int("count", len(entries)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer, action string) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "\n⚠️  Type 'yes' to %s: ", action)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
