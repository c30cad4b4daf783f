package codes

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"catalog-sync/core/record"
)

// ScanImages lists the image files of dir, sorted by path. Subfolders are
// walked only when recursive is set.
func ScanImages(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, record.NewIOError("scan images", dir, err)
	}
	if !info.IsDir() {
		return nil, record.NewIOError("scan images", dir, fs.ErrInvalid)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsImage(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, record.NewIOError("scan images", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IndexByCode maps each code key to the first image path carrying it.
// Images without a product code are left out.
func IndexByCode(paths []string) map[string]string {
	index := make(map[string]string, len(paths))
	for _, p := range paths {
		key := ExtractCodeKey(Stem(p))
		if !LooksLikeProductCode(key) {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = p
		}
	}
	return index
}
