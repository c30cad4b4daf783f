package cmd

import (
	"fmt"
	"os"

	"catalog-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where .env and config.yaml are looked up.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-sync",
	Short: "Catalog page synchronizer",
	Long: `catalog-sync keeps the product table embedded in a catalog HTML page
in sync with its authoritative source: an Excel workbook, a folder of product
images or a products table in a database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error. Errors are
// always logged with the console encoder.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding .env and config.yaml")
}
