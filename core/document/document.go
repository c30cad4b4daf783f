package document

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"catalog-sync/core/record"
	"catalog-sync/core/tsv"

	"golang.org/x/text/encoding/charmap"
)

// Encodings a document can be read in.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded catalog page.
type Document struct {
	Text     string
	BOM      bool
	Encoding string
}

// HasBOM reports whether data starts with a UTF-8 byte order mark.
func HasBOM(data []byte) bool {
	return bytes.HasPrefix(data, utf8BOM)
}

// Decode reads raw bytes. UTF-8 is expected; anything that is not valid
// UTF-8 is read as Windows-1252, the usual fallback for hand edited pages.
func Decode(data []byte) (*Document, error) {
	doc := &Document{Encoding: EncodingUTF8}
	if HasBOM(data) {
		doc.BOM = true
		data = data[len(utf8BOM):]
	}

	if utf8.Valid(data) {
		doc.Text = string(data)
		return doc, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Text = string(decoded)
	doc.Encoding = EncodingWindows1252
	return doc, nil
}

// Encode returns the bytes to write, in the encoding the document was read
// in and with its byte order mark restored.
func (d *Document) Encode() ([]byte, error) {
	var body []byte
	switch d.Encoding {
	case EncodingWindows1252:
		enc, err := charmap.Windows1252.NewEncoder().String(d.Text)
		if err != nil {
			return nil, &record.ValidationError{Message: "text cannot be represented in windows-1252: " + err.Error()}
		}
		body = []byte(enc)
	default:
		body = []byte(d.Text)
	}

	if !d.BOM {
		return body, nil
	}
	out := make([]byte, 0, len(utf8BOM)+len(body))
	out = append(out, utf8BOM...)
	return append(out, body...), nil
}

// Newline returns the line terminator used by the document.
func (d *Document) Newline() string {
	return tsv.NewlineOf(d.Text)
}

// WithText returns a copy of d carrying new text.
func (d *Document) WithText(text string) *Document {
	out := *d
	out.Text = text
	return &out
}
