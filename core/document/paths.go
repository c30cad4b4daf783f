package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// UniquePath returns path if nothing exists there, otherwise the first free
// "base (n).ext" sibling.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// NextNumberedPath returns path if free, otherwise the first free
// "base_n.ext" sibling. Exports use it so they never overwrite a workbook.
func NextNumberedPath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}
