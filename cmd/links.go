package cmd

import (
	"fmt"

	"catalog-sync/core/codes"
	"catalog-sync/feature/spreadsheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var linksDir string

// linksCmd refreshes the image path column of the source workbook.
var linksCmd = &cobra.Command{
	Use:   "link-images [workbook]",
	Short: "Rewrite the Ruta column of the workbook with each product's image",
	Long: `Scans the image folder and writes, for every product row of the workbook,
the path of the image named after its code into the "Ruta" column as a
clickable link. Rows without an image get an empty cell.

Run it after assign-codes so the workbook points at the renamed files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.log.Sync()

		book := e.cfg.Spreadsheet.Path
		if len(args) > 0 {
			book = args[0]
		}
		if spreadsheet.IsCSV(book) {
			return fmt.Errorf("%s: image links need an .xlsx workbook", book)
		}
		dir := linksDir
		if dir == "" {
			dir = e.cfg.Images.Dir
		}

		paths, err := codes.ScanImages(dir, e.cfg.Images.Recursive)
		if err != nil {
			return fmt.Errorf("failed to scan images: %w", err)
		}

		res, err := spreadsheet.UpdateImageLinks(book, e.schema, e.sheetOptions(), codes.IndexByCode(paths))
		if err != nil {
			return fmt.Errorf("failed to update image links: %w", err)
		}
		e.log.Info("Image links updated",
			zap.String("workbook", book),
			zap.Int("rows", res.Rows),
			zap.Int("linked", res.Linked),
			zap.Int("cleared", res.Cleared))
		return nil
	},
}

func init() {
	linksCmd.Flags().StringVar(&linksDir, "dir", "", "Image folder (defaults from config)")
	RootCmd.AddCommand(linksCmd)
}
