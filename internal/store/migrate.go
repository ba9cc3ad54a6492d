package store

import "github.com/twiced-technology-gmbh/tasktrack/internal/task"

// Migrate backfills Status from Completed on every task and subtask that
// has none, and returns how many were backfilled. Running it again on the
// same tasks returns 0.
func Migrate(tasks []*task.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == "" {
			t.Status = task.StatusFromCompleted(t.Completed)
			n++
		}
		n += Migrate(t.Subtasks)
	}
	return n
}
