package renamer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"catalog-sync/core/codes"
	"catalog-sync/core/record"

	"go.uber.org/zap"
)

// Rename is one planned or performed file rename.
type Rename struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// AssignResult reports an AssignCodes run.
type AssignResult struct {
	Targets   int      `json:"targets"`
	Available int      `json:"available"`
	Assigned  int      `json:"assigned"`
	Errors    int      `json:"errors"`
	Min       int64    `json:"min"`
	Max       int64    `json:"max"`
	AfterMax  bool     `json:"after_max"` // some codes lie above the source range
	Renames   []Rename `json:"renames"`
}

// RenameResult reports a RenameFromSource run.
type RenameResult struct {
	Renamed            int      `json:"renamed"`
	SkippedNoCode      int      `json:"skipped_no_code"`
	SkippedNotInSource int      `json:"skipped_not_in_source"`
	SkippedNoName      int      `json:"skipped_no_name"`
	Errors             int      `json:"errors"`
	Renames            []Rename `json:"renames"`
}

// Options selects the images and whether files are touched.
type Options struct {
	Recursive bool
	DryRun    bool
}

// Renamer renames images on the local filesystem.
type Renamer struct {
	logger *zap.Logger
	rename func(oldpath, newpath string) error
}

// New creates a Renamer.
func New(logger *zap.Logger) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renamer{logger: logger, rename: os.Rename}
}

// AssignCodes prefixes every uncoded image in dir with a free code derived
// from the keys of the authoritative table.
func (r *Renamer) AssignCodes(ctx context.Context, dir string, keys []string, opts Options) (*AssignResult, error) {
	stats, err := codes.NumericStats(keys)
	if err != nil {
		return nil, err
	}

	paths, err := codes.ScanImages(dir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	used := make(map[int64]struct{}, len(stats.Used))
	for n := range stats.Used {
		used[n] = struct{}{}
	}
	var targets []string
	for _, p := range paths {
		key := codes.ExtractCodeKey(codes.Stem(p))
		if !codes.LooksLikeProductCode(key) {
			targets = append(targets, p)
			continue
		}
		if record.IsNumericKey(key) {
			if n, err := strconv.ParseInt(key, 10, 64); err == nil {
				used[n] = struct{}{}
			}
		}
	}

	result := &AssignResult{Targets: len(targets), Min: stats.Min, Max: stats.Max}
	if len(targets) == 0 {
		return result, nil
	}

	avail := codes.Allocate(used, stats.Min, stats.Max, len(targets))
	result.Available = len(avail)

	reserved := make(map[string]struct{})
	for i, p := range targets[:min(len(targets), len(avail))] {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if avail[i] > stats.Max {
			result.AfterMax = true
		}
		code := codes.FormatCode(avail[i], stats.Width)
		stem := codes.CleanStem(code + codes.Separator + codes.Stem(p))
		target := uniqueSibling(p, stem, reserved)
		if target == p {
			continue
		}

		rn := Rename{From: p, To: target, Code: code}
		if err := r.apply(rn, opts.DryRun); err != nil {
			rn.Error = err.Error()
			result.Errors++
		} else {
			result.Assigned++
		}
		result.Renames = append(result.Renames, rn)
	}

	r.logger.Info("Codes assigned",
		zap.String("dir", dir),
		zap.Int("targets", result.Targets),
		zap.Int("assigned", result.Assigned),
		zap.Int("errors", result.Errors),
		zap.Bool("dry_run", opts.DryRun))
	return result, nil
}

// RenameFromSource renames every coded image after its product name.
func (r *Renamer) RenameFromSource(ctx context.Context, dir string, set *record.RecordSet, mode codes.StemMode, opts Options) (*RenameResult, error) {
	paths, err := codes.ScanImages(dir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	schema := set.Schema()
	result := &RenameResult{}
	reserved := make(map[string]struct{})
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		key := codes.ExtractCodeKey(codes.Stem(p))
		if key == "" {
			result.SkippedNoCode++
			continue
		}
		rec, ok := set.Get(key)
		if !ok {
			result.SkippedNotInSource++
			continue
		}

		product := schema.ToProduct(rec)
		stem := codes.BuildStem(key, product.Name, mode)
		if stem == "" {
			result.SkippedNoName++
			continue
		}

		target := uniqueSibling(p, stem, reserved)
		if target == p {
			continue
		}

		rn := Rename{From: p, To: target, Code: key}
		if err := r.apply(rn, opts.DryRun); err != nil {
			rn.Error = err.Error()
			result.Errors++
		} else {
			result.Renamed++
		}
		result.Renames = append(result.Renames, rn)
	}

	r.logger.Info("Images renamed from source",
		zap.String("dir", dir),
		zap.Int("renamed", result.Renamed),
		zap.Int("skipped_no_code", result.SkippedNoCode),
		zap.Int("skipped_not_in_source", result.SkippedNotInSource),
		zap.Int("errors", result.Errors),
		zap.Bool("dry_run", opts.DryRun))
	return result, nil
}

func (r *Renamer) apply(rn Rename, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := r.rename(rn.From, rn.To); err != nil {
		r.logger.Warn("Rename failed", zap.String("from", rn.From), zap.String("to", rn.To), zap.Error(err))
		return record.NewIOError("rename", rn.From, err)
	}
	return nil
}

// uniqueSibling returns the path of stem next to path, keeping its
// extension. A name already taken on disk or reserved by an earlier rename
// gets the first free "_N" suffix. The chosen name is reserved.
func uniqueSibling(path, stem string, reserved map[string]struct{}) string {
	dir, ext := filepath.Dir(path), filepath.Ext(path)
	candidate := filepath.Join(dir, stem+ext)
	if candidate == path {
		return path
	}
	for n := 1; taken(candidate, path, reserved); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
	reserved[candidate] = struct{}{}
	return candidate
}

func taken(candidate, self string, reserved map[string]struct{}) bool {
	if candidate == self {
		return true
	}
	if _, ok := reserved[candidate]; ok {
		return true
	}
	_, err := os.Stat(candidate)
	return err == nil
}
