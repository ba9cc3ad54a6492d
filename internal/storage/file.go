package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultJSONFile is the data file name for the json backend.
const DefaultJSONFile = "tasks.json"

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// File stores the document as a plain file, replaced atomically on save.
type File struct {
	path string
}

// NewFile returns a file backend rooted at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load implements Backend.
func (f *File) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path) //nolint:gosec // data path from trusted board dir
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}

// Save implements Backend. The document is written to a temp file in the
// same directory and renamed over the target.
func (f *File) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("writing temp data file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Path implements Backend.
func (f *File) Path() string { return f.path }

// Close implements Backend.
func (f *File) Close() error { return nil }
