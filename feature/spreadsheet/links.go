package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-sync/core/codes"
	"catalog-sync/core/record"
	"catalog-sync/core/utils"

	"github.com/xuri/excelize/v2"
)

// LinkHeader is the column that receives the image path of each product.
const LinkHeader = "Ruta"

// LinkResult counts the rows touched by UpdateImageLinks.
type LinkResult struct {
	Rows    int `json:"rows"`
	Linked  int `json:"linked"`
	Cleared int `json:"cleared"`
}

// UpdateImageLinks rewrites the LinkHeader column of a workbook: rows whose
// key has an image in images get its path as a clickable link, every other
// row is cleared. images is keyed by sanitized product code, as returned by
// codes.IndexByCode. The workbook is replaced through a sibling temp file.
func UpdateImageLinks(path string, schema record.Schema, opts Options, images map[string]string) (*LinkResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, record.NewIOError("open workbook", path, err)
	}
	defer f.Close()

	sheet := SheetName(f, opts.Sheet)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, record.NewIOError("read sheet "+sheet, path, err)
	}
	headerRow := opts.headerRow()
	if len(rows) < headerRow {
		return nil, record.NewStructureError(fmt.Sprintf("sheet %q has no header row %d", sheet, headerRow))
	}

	keyCol, linkCol := -1, -1
	for col, h := range rows[headerRow-1] {
		switch record.NormalizeHeader(h) {
		case record.NormalizeHeader(schema.KeyField().Name):
			keyCol = col
		case record.NormalizeHeader(LinkHeader):
			linkCol = col
		}
	}
	if keyCol < 0 || linkCol < 0 {
		return nil, record.NewStructureError(fmt.Sprintf("sheet %q row %d needs the %q and %q columns",
			sheet, headerRow, schema.KeyField().Name, LinkHeader))
	}

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "0563C1", Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create link style: %w", err)
	}
	plainStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left"}})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}

	result := &LinkResult{}
	for i := headerRow; i < len(rows); i++ {
		cell, _ := excelize.CoordinatesToCellName(linkCol+1, i+1)
		key := ""
		if keyCol < len(rows[i]) {
			key = codes.Sanitize(utils.CellString(rows[i][keyCol]))
		}
		if key == "" {
			continue
		}
		result.Rows++

		if img, ok := images[key]; ok {
			if err := f.SetCellStr(sheet, cell, img); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
			if err := f.SetCellHyperLink(sheet, cell, FileLink(img), "External"); err != nil {
				return nil, fmt.Errorf("failed to link %s: %w", cell, err)
			}
			_ = f.SetCellStyle(sheet, cell, cell, linkStyle)
			result.Linked++
			continue
		}

		if err := f.SetCellStr(sheet, cell, ""); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", cell, err)
		}
		if linked, _, _ := f.GetCellHyperLink(sheet, cell); linked {
			if err := f.SetCellHyperLink(sheet, cell, "", "None"); err != nil {
				return nil, fmt.Errorf("failed to unlink %s: %w", cell, err)
			}
		}
		_ = f.SetCellStyle(sheet, cell, cell, plainStyle)
		result.Cleared++
	}

	tmp := filepath.Join(filepath.Dir(path), ".tmp_write_"+filepath.Base(path))
	if err := f.SaveAs(tmp); err != nil {
		return nil, record.NewIOError("save workbook", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, record.NewIOError("replace workbook", path, err)
	}
	return result, nil
}

// FileLink turns a local path into a hyperlink target. URLs pass through.
func FileLink(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}
