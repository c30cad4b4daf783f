package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"catalog-sync/core/logger"
	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	checkJSON bool
	checkFix  bool
)

// checkCmd runs the integrity checks.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the catalog page, storage and database",
	Long: `Parses the catalog page and validates every row, then checks the storage
bucket and the products table when they are enabled. Exits with an error when
any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		e, err := loadEnv()
		if err != nil {
			return err
		}
		l := e.log
		defer l.Sync()

		var db *gorm.DB
		if e.cfg.Database.Enabled {
			conn, closeDB, err := e.connectDB()
			if err != nil {
				l.Warn("Optional database connection failed", zap.Error(err))
			} else {
				defer closeDB()
				db = conn
			}
		}

		svc := integrity.NewService(integrity.Config{
			Store:    e.store,
			Parser:   e.parser,
			Document: e.cfg.Catalog.Document,
			Client:   e.client,
			Bucket:   e.cfg.Storage.Bucket,
			Prefix:   e.cfg.Storage.Prefix,
			DB:       db,
			Profile:  e.profile(),
		}, logger.Named(l, "integrity"))

		if checkFix && e.client != nil {
			st, err := svc.CheckStorage(ctx)
			if err != nil {
				return fmt.Errorf("storage check failed: %w", err)
			}
			if len(st.Missing) > 0 {
				if err := svc.FixStorage(ctx, st.Missing); err != nil {
					return fmt.Errorf("failed to fix storage: %w", err)
				}
			}
		}

		report := svc.CheckAll(ctx)

		if checkJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			names := make([]string, 0, len(report.Checks))
			for name := range report.Checks {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(cmd.OutOrStdout(), "\n=== Catalog Integrity ===")
			for _, name := range names {
				res := report.Checks[name]
				line := fmt.Sprintf("%-9s %s", name+":", res.Status)
				if res.Error != "" {
					line += " (" + res.Error + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		}

		if !report.OK {
			return fmt.Errorf("integrity check failed")
		}
		l.Info("All integrity checks passed")
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the full report as JSON")
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Create a missing bucket or folder before checking")

	RootCmd.AddCommand(checkCmd)
}
