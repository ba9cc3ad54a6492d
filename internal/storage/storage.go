// Package storage persists the serialized task document in a single
// key/value slot. Backends differ only in where the bytes live.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotExist is returned by Load when the slot has never been written.
var ErrNotExist = errors.New("storage: document does not exist")

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "todoApp_tasks"

// Backend names accepted in configuration.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the backend names accepted by Open.
var Backends = []string{BackendJSON, BackendSQLite}

// Backend reads and writes one serialized document.
type Backend interface {
	// Load returns the stored bytes, or ErrNotExist.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error
	// Path returns the file backing the slot, or "" when there is none.
	Path() string
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string // json, sqlite, or memory
	Dir     string // board directory; relative File paths resolve against it
	File    string // data file name or path
	Key     string // slot key (sqlite)
}

// Path returns the data file opts resolves to, or "" for the memory backend.
func (o Options) Path() string {
	path := o.File
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(o.Dir, path)
	}
	if path != "" {
		return path
	}
	switch o.Backend {
	case BackendJSON, "":
		return filepath.Join(o.Dir, DefaultJSONFile)
	case BackendSQLite:
		return filepath.Join(o.Dir, DefaultSQLiteFile)
	}
	return ""
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	switch opts.Backend {
	case BackendJSON, "":
		return NewFile(opts.Path()), nil
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Path(), key)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
