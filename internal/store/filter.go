package store

import (
	"strings"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// FilterMode selects top-level tasks by completion.
type FilterMode string

// Filter modes.
const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
)

// FilterModes lists the filter modes in cycling order.
var FilterModes = []FilterMode{FilterAll, FilterPending, FilterCompleted}

// ParseFilterMode validates a filter mode name.
func ParseFilterMode(s string) (FilterMode, error) {
	m := FilterMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case FilterAll, FilterPending, FilterCompleted:
		return m, nil
	}
	return "", clierr.Newf(clierr.InvalidFilter, "invalid filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": []string{string(FilterAll), string(FilterPending), string(FilterCompleted)},
		})
}

// Matches reports whether t passes the filter.
func (m FilterMode) Matches(t *task.Task) bool {
	switch m {
	case FilterPending:
		return t.Status != task.StatusCompleted
	case FilterCompleted:
		return t.Status == task.StatusCompleted
	}
	return true
}

// Filter returns the top-level tasks matching mode, in collection order.
func (s *Store) Filter(mode FilterMode) []*task.Task {
	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if mode.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
