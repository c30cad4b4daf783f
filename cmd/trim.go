package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/logger"
	"catalog-sync/feature/trim"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// trimCmd writes a copy of the page with only the header and first product.
var trimCmd = &cobra.Command{
	Use:   "trim [page]",
	Short: "Write a copy of the page with the table cut to its first product",
	Long: `Creates "<page>.SIN_CATALOGO.html" holding the page with the table cut down
to its header and first product, plus two sidecar files next to it:
"<name>.CATALOGO.tsv" with the full table and "<name>.CATALOGO.yaml" with the
metadata restore needs. The original page is never modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()

		page := e.cfg.Catalog.Document
		if len(args) == 1 {
			page = args[0]
		}

		svc := trim.NewService(e.store, e.parser, logger.Named(e.log, "trim"))
		res, err := svc.Strip(context.Background(), page)
		if err != nil {
			return fmt.Errorf("failed to trim %s: %w", page, err)
		}

		e.log.Info("Catalog trimmed",
			zap.String("page", res.StrippedName),
			zap.String("table", res.TableName),
			zap.String("meta", res.MetaName),
			zap.Int("removed_rows", res.RemovedRows))
		fmt.Fprintln(cmd.OutOrStdout(), res.StrippedName)
		return nil
	},
}

// restoreCmd puts the saved table back into a trimmed page.
var restoreCmd = &cobra.Command{
	Use:   "restore <trimmed-page>",
	Short: "Restore the full table into a trimmed page",
	Long: `Reads the sidecar files written by trim and puts the full table back into
the trimmed page, in place. The header and first product of the page must
still match the saved table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()

		svc := trim.NewService(e.store, e.parser, logger.Named(e.log, "trim"))
		res, err := svc.Restore(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", args[0], err)
		}

		if res.AlreadyComplete {
			e.log.Info("The page already holds the full table. No changes were made.", zap.String("page", res.Name))
			return nil
		}
		e.log.Info("Catalog restored", zap.String("page", res.Name), zap.Int("rows", res.RestoredRows))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(trimCmd)
	RootCmd.AddCommand(restoreCmd)
}
