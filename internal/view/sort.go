package view

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// SortFields lists the accepted sort keys. An empty key keeps store order.
var SortFields = []string{"id", "status", "created", "completed", "text"}

// Sort sorts tasks by the given field. Status sorts in column order.
func Sort(tasks []*task.Task, field string, reverse bool) {
	if field == "" {
		if reverse {
			for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
				tasks[i], tasks[j] = tasks[j], tasks[i]
			}
		}
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return compareTasks(tasks[j], tasks[i], field)
		}
		return compareTasks(tasks[i], tasks[j], field)
	})
}

func compareTasks(a, b *task.Task, field string) bool {
	switch field {
	case "status":
		return a.Status.Index() < b.Status.Index()
	case "created":
		return a.CreatedAt.Before(b.CreatedAt)
	case "completed":
		return compareCompleted(a, b)
	case "text":
		return strings.ToLower(a.Text) < strings.ToLower(b.Text)
	default:
		return a.ID < b.ID
	}
}

func compareCompleted(a, b *task.Task) bool {
	if a.CompletedAt == nil {
		return false // nil sorts last
	}
	if b.CompletedAt == nil {
		return true
	}
	return a.CompletedAt.Before(*b.CompletedAt)
}
