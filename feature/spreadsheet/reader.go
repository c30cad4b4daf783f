package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-sync/core/record"
	"catalog-sync/core/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet looked up first.
const DefaultSheet = "Catalogo"

// Options selects where the table lives inside the workbook.
type Options struct {
	// Sheet is the preferred sheet. The active sheet is used when it is missing.
	Sheet string
	// HeaderRow is the 1-based row with the column names. 0 means 1.
	HeaderRow int
	// Delimiter separates CSV fields. 0 detects it from the header line.
	Delimiter rune
}

func (o Options) headerRow() int {
	if o.HeaderRow < 1 {
		return 1
	}
	return o.HeaderRow
}

// ReadFile opens a workbook and reads its product table.
func ReadFile(path string, schema record.Schema, opts Options) (*record.RecordSet, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, record.NewIOError("open workbook", path, err)
	}
	defer f.Close()

	return readWorkbook(f, path, schema, opts)
}

// Read reads the product table of a workbook held in r. name labels errors.
func Read(r io.Reader, name string, schema record.Schema, opts Options) (*record.RecordSet, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, record.NewIOError("open workbook", name, err)
	}
	defer f.Close()

	return readWorkbook(f, name, schema, opts)
}

// SheetName returns the sheet to read: the preferred one when present,
// otherwise the active sheet.
func SheetName(f *excelize.File, preferred string) string {
	if preferred == "" {
		preferred = DefaultSheet
	}
	for _, name := range f.GetSheetList() {
		if name == preferred {
			return name
		}
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

func readWorkbook(f *excelize.File, name string, schema record.Schema, opts Options) (*record.RecordSet, error) {
	sheet := SheetName(f, opts.Sheet)
	if sheet == "" {
		return nil, record.NewStructureError(fmt.Sprintf("%s has no sheets", name))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, record.NewIOError("read sheet "+sheet, name, err)
	}

	return buildRecords(rows, name, fmt.Sprintf("sheet %q", sheet), schema, opts.headerRow(),
		func(col, rowNum int, raw string, field record.Field) (string, error) {
			return cellText(f, sheet, col, rowNum, raw, field)
		})
}

type cellFunc func(col, rowNum int, raw string, field record.Field) (string, error)

// buildRecords turns the rows below headerRow into records. Fully blank rows
// are skipped and row numbers are 1-based.
func buildRecords(rows [][]string, name, where string, schema record.Schema, headerRow int, cell cellFunc) (*record.RecordSet, error) {
	if len(rows) < headerRow {
		return nil, record.NewStructureError(fmt.Sprintf("%s has no header row %d", where, headerRow))
	}

	columns, err := MapColumns(rows[headerRow-1], schema)
	if err != nil {
		return nil, err
	}

	var records []record.Record
	for i := headerRow; i < len(rows); i++ {
		rowNum := i + 1
		values := make([]string, schema.Width())
		blank := true
		for field, col := range columns {
			if col < len(rows[i]) {
				v, err := cell(col, rowNum, rows[i][col], schema.Fields[field])
				if err != nil {
					return nil, err
				}
				values[field] = v
			}
			if values[field] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		if err := schema.ValidateValues(values, rowNum); err != nil {
			return nil, err
		}
		records = append(records, schema.NewRecord(values, rowNum))
	}

	return record.BuildRecordSet(schema, name, records)
}

// cellText returns the table text of a cell. Number cells of numeric fields
// are converted from their stored value, so 0.125 is never read back as a
// grouped 125.
func cellText(f *excelize.File, sheet string, col, rowNum int, raw string, field record.Field) (string, error) {
	text := utils.CellString(raw)
	if field.Kind == record.KindText || text == "" {
		return text, nil
	}
	cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
	if err != nil {
		return "", err
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return "", record.NewIOError("read cell "+cell, sheet, err)
	}
	if cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset {
		return text, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return text, nil
	}
	out, err := record.DecimalText(decimal.NewFromFloat(n))
	if err != nil {
		return "", &record.ValidationError{Row: rowNum, Field: field.Name, Value: text, Message: "more than two decimal places"}
	}
	return out, nil
}

// MapColumns returns, for each schema field, the 0-based column holding it.
// Headers are compared after normalization. Missing columns and required
// columns appearing more than once are reported together.
func MapColumns(header []string, schema record.Schema) ([]int, error) {
	positions := make(map[string][]int)
	for col, h := range header {
		key := record.NormalizeHeader(h)
		if key == "" {
			continue
		}
		positions[key] = append(positions[key], col)
	}

	columns := make([]int, schema.Width())
	var missing, dups []string
	for i, field := range schema.Fields {
		found := positions[record.NormalizeHeader(field.Name)]
		switch {
		case len(found) == 0:
			missing = append(missing, field.Name)
		case len(found) > 1:
			dups = append(dups, field.Name)
		default:
			columns[i] = found[0]
		}
	}

	var issues []string
	if len(missing) > 0 {
		issues = append(issues, "missing required columns: "+strings.Join(missing, ", "))
	}
	if len(dups) > 0 {
		issues = append(issues, "duplicate required columns: "+strings.Join(dups, ", "))
	}
	if len(issues) > 0 {
		return nil, record.NewStructureError(issues...)
	}
	return columns, nil
}
