package config

import (
	"fmt"

	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

// migrate walks cfg forward one version at a time until it reaches
// CurrentVersion. A config from a newer tasktrack is rejected.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade tasktrack)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations is keyed by the version each step upgrades from. Every step
// bumps cfg.Version itself.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
	3: migrateV3ToV4,
}

// migrateV1ToV2 adds text limits.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Limits.TaskText == 0 {
		cfg.Limits.TaskText = DefaultTextLimit
	}
	if cfg.Limits.SubtaskText == 0 {
		cfg.Limits.SubtaskText = cfg.Limits.TaskText
	}
	cfg.Version = 2
	return nil
}

// migrateV2ToV3 adds the storage section. Earlier boards always used the
// json backend under the default key.
func migrateV2ToV3(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = storage.BackendJSON
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = storage.DefaultKey
	}
	cfg.Version = 3
	return nil
}

// migrateV3ToV4 adds the tui section with title_lines default.
func migrateV3ToV4(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.TUI.TitleLines == 0 {
		cfg.TUI.TitleLines = DefaultTitleLines
	}
	cfg.Version = 4
	return nil
}
