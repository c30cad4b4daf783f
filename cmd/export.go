package cmd

import (
	"context"
	"fmt"

	"catalog-sync/feature/spreadsheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut      string
	exportDocument string
	exportImages   bool
)

// exportCmd writes the page's table to a new workbook.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog table to a new Excel workbook",
	Long: `Writes the product table of the catalog page to a new workbook with a
bold frozen header, an autofilter and sized columns. An existing file is never
overwritten: productos_1.xlsx, productos_2.xlsx, ... are used instead.

With --images, the image of each product found in the configured image folder
is embedded next to its row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()

		out := exportOut
		if out == "" {
			out = e.cfg.Spreadsheet.ExportPath
		}

		opts := spreadsheet.ExportOptions{Sheet: e.cfg.Spreadsheet.Sheet}
		if exportImages {
			images, err := spreadsheet.ImagesFor(e.cfg.Images.Dir, e.cfg.Images.Recursive)
			if err != nil {
				return fmt.Errorf("failed to scan images: %w", err)
			}
			opts.Images = images
		}

		res, err := e.catalogService(exportDocument).Export(ctx, out, opts)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		e.log.Info("Catalog exported",
			zap.String("path", res.Path),
			zap.Int("rows", res.Rows),
			zap.Int("images", res.Images))
		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Target workbook (defaults from config)")
	exportCmd.Flags().StringVar(&exportDocument, "document", "", "Catalog page (defaults from config)")
	exportCmd.Flags().BoolVar(&exportImages, "images", false, "Embed product images from the image folder")

	RootCmd.AddCommand(exportCmd)
}
