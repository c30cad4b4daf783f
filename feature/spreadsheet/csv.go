package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog-sync/core/document"
	"catalog-sync/core/record"
	"catalog-sync/core/utils"
)

// csvDelimiters are the separators tried by SniffDelimiter, in tie order.
var csvDelimiters = []rune{';', ',', '\t', '|'}

const sniffLines = 10

// IsCSV reports whether name has a .csv extension.
func IsCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// SniffDelimiter picks the separator that appears most often in the first
// lines of text. Text without any candidate gives ','.
func SniffDelimiter(text string) rune {
	var sample []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		sample = append(sample, l)
		if len(sample) == sniffLines {
			break
		}
	}
	joined := strings.Join(sample, "\n")

	best, bestCount := ',', 0
	for _, d := range csvDelimiters {
		if n := strings.Count(joined, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// ReadCSVFile opens a CSV export and reads its product table.
func ReadCSVFile(path string, schema record.Schema, opts Options) (*record.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, record.NewIOError("open csv", path, err)
	}
	defer f.Close()

	return ReadCSV(f, path, schema, opts)
}

// ReadCSV reads the product table of a CSV held in r. The header row and the
// column matching follow the workbook rules. A byte order mark is dropped and
// text that is not UTF-8 is read as Windows-1252.
func ReadCSV(r io.Reader, name string, schema record.Schema, opts Options) (*record.RecordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, record.NewIOError("read csv", name, err)
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, record.NewIOError("decode csv", name, err)
	}

	reader := csv.NewReader(strings.NewReader(doc.Text))
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = SniffDelimiter(doc.Text)
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, record.NewStructureError(fmt.Sprintf("%s: %v", name, err))
	}

	return buildRecords(rows, name, filepath.Base(name), schema, opts.headerRow(),
		func(_, _ int, raw string, _ record.Field) (string, error) {
			return utils.CellString(raw), nil
		})
}
