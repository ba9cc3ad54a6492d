package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultSQLiteFile is the database file name for the sqlite backend.
const DefaultSQLiteFile = "tasks.db"

// SQLite stores the document as one row of a key/value table.
type SQLite struct {
	db   *sql.DB
	path string
	key  string
}

// OpenSQLite opens (creating if needed) the database at path and
// prepares the kv table.
func OpenSQLite(ctx context.Context, path, key string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// WAL allows a reader (watcher reload) while another process writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configuring %s: %w", path, err)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	return &SQLite{db: db, path: path, key: key}, nil
}

// Load implements Backend.
func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, s.key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", s.key, err)
	}
	return []byte(v), nil
}

// Save implements Backend.
func (s *SQLite) Save(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, s.key, string(data)); err != nil {
		return fmt.Errorf("writing key %q: %w", s.key, err)
	}
	return nil
}

// Path implements Backend.
func (s *SQLite) Path() string { return s.path }

// Close implements Backend.
func (s *SQLite) Close() error { return s.db.Close() }
