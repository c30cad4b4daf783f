package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/codes"
	"catalog-sync/core/logger"
	"catalog-sync/feature/renamer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	assignDir        string
	assignDryRun     bool
	assignFromSource bool
	assignStemMode   string
)

// assignCmd gives a free product code to every uncoded image.
var assignCmd = &cobra.Command{
	Use:   "assign-codes",
	Short: "Prefix images that lack a product code with a free code",
	Long: `Scans the image folder for images whose names do not start with a product
code and renames each one to "<code>_<name>.<ext>". Codes fill the gaps of the
range used by the catalog page first, then continue above its maximum.

With --from-source, coded images are instead renamed after the product the
page holds for their code (see --stem-mode).

Examples:
  # Preview
  assign-codes --dry-run

  # Rename with auto-confirm
  assign-codes --yes

  # Rename coded images to "<code>_<name>"
  assign-codes --from-source --stem-mode both --yes`,
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignDir, "dir", "", "Image folder (defaults from config)")
	assignCmd.Flags().BoolVar(&assignDryRun, "dry-run", false, "Only report the renames")
	assignCmd.Flags().BoolVar(&assignFromSource, "from-source", false, "Rename coded images after their product")
	assignCmd.Flags().StringVar(&assignStemMode, "stem-mode", "", "With --from-source: code, name or both (defaults from config)")
	assignCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the renames (non-interactive)")

	RootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := loadEnv()
	if err != nil {
		return err
	}
	l := e.log
	defer l.Sync()

	dir := assignDir
	if dir == "" {
		dir = e.cfg.Images.Dir
	}

	set, err := e.catalogService("").Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	r := renamer.New(logger.Named(l, "renamer"))
	opts := renamer.Options{Recursive: e.cfg.Images.Recursive, DryRun: true}

	if assignFromSource {
		mode := codes.StemMode(assignStemMode)
		if assignStemMode == "" {
			mode = codes.StemMode(e.cfg.Images.StemMode)
		}

		preview, err := r.RenameFromSource(ctx, dir, set, mode, opts)
		if err != nil {
			return err
		}
		printRenames(l, preview.Renames)
		l.Info("Rename plan",
			zap.Int("renames", len(preview.Renames)),
			zap.Int("skipped_no_code", preview.SkippedNoCode),
			zap.Int("skipped_not_in_source", preview.SkippedNotInSource),
			zap.Int("skipped_no_name", preview.SkippedNoName))
		if len(preview.Renames) == 0 || !confirmRenames(cmd) {
			return nil
		}

		opts.DryRun = false
		res, err := r.RenameFromSource(ctx, dir, set, mode, opts)
		if err != nil {
			return err
		}
		l.Info("Images renamed", zap.Int("renamed", res.Renamed), zap.Int("errors", res.Errors))
		if res.Errors > 0 {
			return fmt.Errorf("%d images could not be renamed", res.Errors)
		}
		return nil
	}

	preview, err := r.AssignCodes(ctx, dir, set.Keys(), opts)
	if err != nil {
		return err
	}
	printRenames(l, preview.Renames)
	l.Info("Code assignment plan",
		zap.Int("targets", preview.Targets),
		zap.Int64("min", preview.Min),
		zap.Int64("max", preview.Max),
		zap.Int("free_in_range", preview.Available),
		zap.Bool("above_max", preview.AfterMax))
	if preview.Targets == 0 || !confirmRenames(cmd) {
		return nil
	}

	opts.DryRun = false
	res, err := r.AssignCodes(ctx, dir, set.Keys(), opts)
	if err != nil {
		return err
	}
	l.Info("Codes assigned", zap.Int("assigned", res.Assigned), zap.Int("errors", res.Errors))
	if res.Errors > 0 {
		return fmt.Errorf("%d images could not be renamed", res.Errors)
	}
	return nil
}

func confirmRenames(cmd *cobra.Command) bool {
	if assignDryRun {
		return false
	}
	return confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), "rename these images")
}

// printRenames logs a sample of planned renames.
func printRenames(l *zap.Logger, renames []renamer.Rename) {
	maxShow := min(10, len(renames))
	for _, rn := range renames[:maxShow] {
		l.Info("Planned rename", zap.String("from", rn.From), zap.String("to", rn.To), zap.String("code", rn.Code))
	}
	if len(renames) > maxShow {
		l.Info("Additional renames not shown", zap.Int("count", len(renames)-maxShow))
	}
}
