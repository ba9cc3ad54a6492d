// Package view holds the presentation state shared by every front end:
// the active filter and layout mode, and the task subsets derived from
// them.
package view

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// StateFileName is the file in the board directory holding the view state.
const StateFileName = "view.yml"

const fileMode = 0o600

// Mode is the presentation layout.
type Mode string

// Layout modes.
const (
	ModeList  Mode = "list"
	ModeBoard Mode = "board"
)

// ParseMode validates a layout mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeList, ModeBoard:
		return m, nil
	}
	return "", clierr.Newf(clierr.InvalidViewMode, "invalid view mode %q", s).
		WithDetails(map[string]any{
			"mode":    s,
			"allowed": []string{string(ModeList), string(ModeBoard)},
		})
}

// Controller owns the active filter and layout mode.
type Controller struct {
	Filter store.FilterMode `yaml:"filter" json:"filter"`
	Mode   Mode             `yaml:"mode" json:"mode"`
}

// New returns a controller showing all tasks as a list.
func New() *Controller {
	return &Controller{Filter: store.FilterAll, Mode: ModeList}
}

// SetFilter validates and applies a filter mode.
func (c *Controller) SetFilter(s string) error {
	f, err := store.ParseFilterMode(s)
	if err != nil {
		return err
	}
	c.Filter = f
	return nil
}

// NextFilter advances to the next filter mode, wrapping around.
func (c *Controller) NextFilter() store.FilterMode {
	i := slices.Index(store.FilterModes, c.Filter)
	c.Filter = store.FilterModes[(i+1)%len(store.FilterModes)]
	return c.Filter
}

// SetMode validates and applies a layout mode.
func (c *Controller) SetMode(s string) error {
	m, err := ParseMode(s)
	if err != nil {
		return err
	}
	c.Mode = m
	return nil
}

// ToggleMode switches between list and board.
func (c *Controller) ToggleMode() Mode {
	if c.Mode == ModeBoard {
		c.Mode = ModeList
	} else {
		c.Mode = ModeBoard
	}
	return c.Mode
}

// Visible returns the top-level tasks that pass the active filter.
// Subtasks are rendered nested under their parent.
func (c *Controller) Visible(s *store.Store) []*task.Task {
	return s.Filter(c.Filter)
}

// Load reads the view state from dir. A missing or unreadable file, or
// invalid values in it, fall back to the defaults.
func Load(dir string) *Controller {
	c := New()
	data, err := os.ReadFile(filepath.Join(dir, StateFileName)) //nolint:gosec // view path from trusted board dir
	if err != nil {
		return c
	}
	var stored Controller
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return c
	}
	if f, err := store.ParseFilterMode(string(stored.Filter)); err == nil {
		c.Filter = f
	}
	if m, err := ParseMode(string(stored.Mode)); err == nil {
		c.Mode = m
	}
	return c
}

// Save writes the view state to dir.
func (c *Controller) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling view state: %w", err)
	}
	path := filepath.Join(dir, StateFileName)
	if err := os.WriteFile(path, data, fileMode); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("board directory %s does not exist: %w", dir, err)
		}
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}
