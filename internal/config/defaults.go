// Package config handles task board configuration.
package config

import "github.com/twiced-technology-gmbh/tasktrack/internal/storage"

const (
	// DefaultDir is the default board directory name.
	DefaultDir = ".tasktrack"
	// HomeDirName is the fallback board directory under the user config dir.
	HomeDirName = "tasktrack"
	// DefaultBackend is the storage backend for new boards.
	DefaultBackend = storage.BackendJSON
	// DefaultTextLimit bounds task and subtask text, in characters.
	DefaultTextLimit = 200
	// DefaultTitleLines is the default number of text lines on TUI cards.
	DefaultTitleLines = 2

	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"
	// LockFileName serializes mutating commands across processes.
	LockFileName = ".lock"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 4
)
