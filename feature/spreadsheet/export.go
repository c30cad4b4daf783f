package spreadsheet

import (
	"fmt"
	"unicode/utf8"

	"catalog-sync/core/codes"
	"catalog-sync/core/document"
	"catalog-sync/core/record"

	"github.com/xuri/excelize/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	minColumnWidth   = 10
	maxColumnWidth   = 60
	imageColumnWidth = 28
	imageRowHeight   = 145
	imageHeader      = "Imagen"
)

// ExportOptions tunes the exported workbook.
type ExportOptions struct {
	// Sheet names the sheet. Defaults to DefaultSheet.
	Sheet string
	// Header overrides the schema column names, e.g. with the page header.
	Header []string
	// Images maps a product key to an image file embedded next to its row.
	Images map[string]string
}

// ExportResult describes a written workbook.
type ExportResult struct {
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
	Images int    `json:"images"`
}

// Export writes set to a new workbook at path, or at the next free numbered
// sibling when path is taken.
func Export(path string, set *record.RecordSet, opts ExportOptions) (*ExportResult, error) {
	schema := set.Schema()
	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	header := schema.Headers()
	if len(opts.Header) >= schema.Width() {
		header = append([]string(nil), opts.Header[:schema.Width()]...)
	}
	withImages := len(opts.Images) > 0
	if withImages {
		header = append(header, imageHeader)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	widths := make([]int, len(header))
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	result := &ExportResult{}
	for i, r := range set.Records() {
		rowNum := i + 2
		cells := make([]any, schema.Width())
		for col := range schema.Fields {
			v := r.Value(col)
			cells[col] = CellValue(schema.Fields[col], v)
			if n := utf8.RuneCountInString(v); n > widths[col] {
				widths[col] = n
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		if img, ok := opts.Images[r.Key]; ok {
			imgCell, _ := excelize.CoordinatesToCellName(len(header), rowNum)
			err := f.AddPicture(sheet, imgCell, img, &excelize.GraphicOptions{
				AutoFit:         true,
				LockAspectRatio: true,
				Positioning:     "oneCell",
			})
			if err == nil {
				_ = f.SetRowHeight(sheet, rowNum, imageRowHeight)
				result.Images++
			}
		}
		result.Rows++
	}

	if err := styleSheet(f, sheet, header, widths, withImages, result.Rows); err != nil {
		return nil, err
	}

	target := document.NextNumberedPath(path)
	if err := f.SaveAs(target); err != nil {
		return nil, record.NewIOError("save workbook", target, err)
	}
	result.Path = target
	return result, nil
}

func styleSheet(f *excelize.File, sheet string, header []string, widths []int, withImages bool, rows int) error {
	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	lastRow := rows + 1
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", last, lastRow), nil); err != nil {
		return fmt.Errorf("failed to add filter: %w", err)
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(min(max(w+2, minColumnWidth), maxColumnWidth))
		if withImages && i == len(widths)-1 {
			width = imageColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	return nil
}

// CellValue converts a table value to what the cell should hold. Numeric
// columns become int64 or float64 when they parse; everything else stays text.
func CellValue(field record.Field, v string) any {
	switch field.Kind {
	case record.KindDecimal:
		d, err := record.ParseDecimal(v)
		if err != nil {
			return v
		}
		if d.IsInteger() {
			return d.IntPart()
		}
		return d.InexactFloat64()
	case record.KindInteger:
		n, err := record.ParseInteger(v)
		if err != nil {
			return v
		}
		return n
	default:
		return v
	}
}

// ImagesFor indexes the images of dir by product key for Export.
func ImagesFor(dir string, recursive bool) (map[string]string, error) {
	paths, err := codes.ScanImages(dir, recursive)
	if err != nil {
		return nil, err
	}
	return codes.IndexByCode(paths), nil
}
