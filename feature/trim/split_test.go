package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitKept(t *testing.T) {
	tests := []struct {
		name    string
		cleaned string
		kept    string
		removed string
	}{
		{"LF", "\nH\nA\nB\nC\n", "\nH\nA\n", "B\nC\n"},
		{"CRLF", "H\r\nA\r\nB\r\n", "H\r\nA\r\n", "B\r\n"},
		{"BlankBetween", "H\n\nA\n\nB\n", "H\n\nA\n", "\nB\n"},
		{"NoTrailingNewline", "H\nA", "H\nA\n", ""},
		{"HeaderOnly", "H\n", "H\n", ""},
		{"Empty", "  \n", "  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, removed := SplitKept(tt.cleaned)
			assert.Equal(t, tt.kept, kept)
			assert.Equal(t, tt.removed, removed)
		})
	}

	assert.True(t, IsTrimmed("H\nA\n\n"))
	assert.False(t, IsTrimmed("H\nA\nB\n"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "web/catalogo.SIN_CATALOGO.htm", StrippedName("web/catalogo.htm"))
	assert.Equal(t, "pagina.SIN_CATALOGO.html", StrippedName("pagina.txt"))
	assert.Equal(t, "pagina.SIN_CATALOGO.html", StrippedName("pagina"))

	table, meta := SidecarNames("web/catalogo.SIN_CATALOGO.html")
	assert.Equal(t, "web/catalogo.SIN_CATALOGO.CATALOGO.tsv", table)
	assert.Equal(t, "web/catalogo.SIN_CATALOGO.CATALOGO.yaml", meta)
}
