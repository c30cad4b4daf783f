package document

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"catalog-sync/core/record"
)

// TempSuffix is appended to the target name while a replacement is written.
const TempSuffix = ".tmp_write"

// FileStore reads and writes documents on the local filesystem.
// Names are file paths.
type FileStore struct {
	now func() time.Time
}

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{now: time.Now}
}

// Read loads and decodes a document.
func (s *FileStore) Read(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, record.NewIOError("read", name, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, record.NewIOError("decode", name, err)
	}
	return doc, nil
}

// Exists reports whether a regular file exists at name.
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	info, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, record.NewIOError("stat", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Write replaces the document. The new content is written to a sibling
// temporary file and renamed over the target; on any failure the target is
// left as it was and the temporary file is removed.
func (s *FileStore) Write(ctx context.Context, name string, doc *Document, opts WriteOptions) (*WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}

	result := &WriteResult{Name: name, Bytes: len(data)}
	if opts.Backup {
		backup, err := s.backup(name)
		if err != nil {
			return nil, err
		}
		result.BackupName = backup
	}

	if err := WriteFileAtomic(name, data, mode); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FileStore) backup(name string) (string, error) {
	if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	target := UniquePath(BackupName(name, s.now()))
	if err := copyFile(name, target); err != nil {
		return "", record.NewIOError("backup", name, err)
	}
	return target, nil
}

// WriteFileAtomic writes data to "<name>.tmp_write", syncs it and renames it
// over name.
func WriteFileAtomic(name string, data []byte, mode os.FileMode) error {
	tmp := name + TempSuffix
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return record.NewIOError("create", tmp, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return record.NewIOError("write", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return record.NewIOError("sync", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return record.NewIOError("close", tmp, err)
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return record.NewIOError("rename", name, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
