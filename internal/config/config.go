package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no task board found (run 'tasktrack init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the task board configuration.
type Config struct {
	Version int           `yaml:"version"`
	Board   BoardConfig   `yaml:"board"`
	Storage StorageConfig `yaml:"storage"`
	Limits  LimitsConfig  `yaml:"limits"`
	TUI     TUIConfig     `yaml:"tui,omitempty"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// StorageConfig selects where the task document lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	File    string `yaml:"file,omitempty"` // relative to the board directory
	Key     string `yaml:"key"`
}

// LimitsConfig bounds task text length, in characters.
type LimitsConfig struct {
	TaskText    int `yaml:"task_text"`
	SubtaskText int `yaml:"subtask_text"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	TitleLines    int   `yaml:"title_lines,omitempty"`
	ConfirmDelete *bool `yaml:"confirm_delete,omitempty"`
}

// Dir returns the absolute path to the board directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LockPath returns the absolute path to the board lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, LockFileName)
}

// StorageOptions returns the backend options for this board.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Storage.Backend,
		Dir:     c.dir,
		File:    c.Storage.File,
		Key:     c.Storage.Key,
	}
}

// WatchPaths returns the files whose changes mean the board must be
// re-read: the config and the data file (plus its WAL for sqlite).
func (c *Config) WatchPaths() []string {
	paths := []string{c.ConfigPath()}
	if p := c.StorageOptions().Path(); p != "" {
		paths = append(paths, p)
		if c.Storage.Backend == storage.BackendSQLite {
			paths = append(paths, p+"-wal")
		}
	}
	return paths
}

// TitleLines returns the configured number of text lines for TUI cards.
func (c *Config) TitleLines() int {
	if c.TUI.TitleLines == 0 {
		return DefaultTitleLines
	}
	return c.TUI.TitleLines
}

// ConfirmDelete reports whether the TUI asks before deleting. Defaults to true.
func (c *Config) ConfirmDelete() bool {
	return c.TUI.ConfirmDelete == nil || *c.TUI.ConfirmDelete
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version: CurrentVersion,
		Board:   BoardConfig{Name: name},
		Storage: StorageConfig{Backend: DefaultBackend, Key: storage.DefaultKey},
		Limits:  LimitsConfig{TaskText: DefaultTextLimit, SubtaskText: DefaultTextLimit},
		TUI:     TUIConfig{TitleLines: DefaultTitleLines},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if !slices.Contains(storage.Backends, c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend %q must be one of %v", ErrInvalid, c.Storage.Backend, storage.Backends)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage.key is required", ErrInvalid)
	}
	if c.Limits.TaskText < 1 || c.Limits.SubtaskText < 1 {
		return fmt.Errorf("%w: limits.task_text and limits.subtask_text must be >= 1", ErrInvalid)
	}
	const minTitleLines, maxTitleLines = 1, 3
	if c.TUI.TitleLines < minTitleLines || c.TUI.TitleLines > maxTitleLines {
		return fmt.Errorf("%w: tui.title_lines must be between %d and %d",
			ErrInvalid, minTitleLines, maxTitleLines)
	}
	return nil
}

// Exists reports whether dir already holds a board config.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// Init creates a new board in dir with default settings and the given name.
func Init(dir, name string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)
	if err := cfg.Create(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Create makes the board directory and writes the config file.
func (c *Config) Create() error {
	if err := os.MkdirAll(c.dir, dirMode); err != nil {
		return fmt.Errorf("creating board directory: %w", err)
	}
	if err := c.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given board directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no task board found (run 'tasktrack init' to create one)")
		}
		dir = parent
	}
}
