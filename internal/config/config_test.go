package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	cfg, err := Init(dir, "demo")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if cfg.Dir() != dir {
		t.Fatalf("Dir = %s", cfg.Dir())
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Board.Name != "demo" || loaded.Storage.Backend != storage.BackendJSON {
		t.Fatalf("loaded = %+v", loaded)
	}
	if loaded.Limits.TaskText != DefaultTextLimit || !loaded.ConfirmDelete() {
		t.Fatalf("defaults not applied: %+v", loaded)
	}
	opts := loaded.StorageOptions()
	if opts.Dir != dir || opts.Key != storage.DefaultKey {
		t.Fatalf("storage options = %+v", opts)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadMigratesOldVersion(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\nboard:\n  name: legacy\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Fatalf("version = %d", cfg.Version)
	}
	if cfg.Limits.TaskText != DefaultTextLimit || cfg.Limits.SubtaskText != DefaultTextLimit {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.Storage.Backend != storage.BackendJSON || cfg.Storage.Key != storage.DefaultKey {
		t.Fatalf("storage = %+v", cfg.Storage)
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 4") {
		t.Fatalf("migrated config not persisted:\n%s", data)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\nboard:\n  name: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"name":        func(c *Config) { c.Board.Name = "" },
		"backend":     func(c *Config) { c.Storage.Backend = "redis" },
		"key":         func(c *Config) { c.Storage.Key = "" },
		"limit":       func(c *Config) { c.Limits.SubtaskText = 0 },
		"title_lines": func(c *Config) { c.TUI.TitleLines = 9 },
	}
	for name, mutate := range cases {
		cfg := NewDefault("demo")
		mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	board := filepath.Join(root, DefaultDir)
	if _, err := Init(board, "demo"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindDir(nested)
	if err != nil || got != board {
		t.Fatalf("FindDir(nested) = %s, %v", got, err)
	}
	got, err = FindDir(board)
	if err != nil || got != board {
		t.Fatalf("FindDir(board) = %s, %v", got, err)
	}

	if _, err := FindDir(t.TempDir()); !clierr.HasCode(err, clierr.BoardNotFound) {
		t.Fatalf("expected BOARD_NOT_FOUND, got %v", err)
	}
}

func TestWatchPaths(t *testing.T) {
	cfg := NewDefault("b")
	cfg.SetDir("/boards/b")

	got := cfg.WatchPaths()
	want := []string{"/boards/b/config.yml", "/boards/b/tasks.json"}
	if !slices.Equal(got, want) {
		t.Fatalf("json WatchPaths = %v, want %v", got, want)
	}

	cfg.Storage.Backend = storage.BackendSQLite
	got = cfg.WatchPaths()
	want = []string{"/boards/b/config.yml", "/boards/b/tasks.db", "/boards/b/tasks.db-wal"}
	if !slices.Equal(got, want) {
		t.Fatalf("sqlite WatchPaths = %v, want %v", got, want)
	}
}
