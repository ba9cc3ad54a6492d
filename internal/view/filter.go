package view

import (
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// FilterOptions narrows a task list beyond the completion filter.
type FilterOptions struct {
	Statuses []task.Status // include only these statuses
	Search   string        // case-insensitive substring match on text and subtask text
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if len(opts.Statuses) > 0 && !slices.Contains(opts.Statuses, t.Status) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	return true
}

// matchesSearch matches a parent when its own text or any subtask text
// contains the query.
func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Text), q) {
		return true
	}
	for _, st := range t.Subtasks {
		if strings.Contains(strings.ToLower(st.Text), q) {
			return true
		}
	}
	return false
}
