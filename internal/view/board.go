package view

import (
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// Column is one board column: the top-level tasks in a single status.
type Column struct {
	Status task.Status  `json:"status"`
	Tasks  []*task.Task `json:"tasks"`
}

// Buckets groups top-level tasks into one column per status, in column
// order. The board always shows every task regardless of the filter.
func (c *Controller) Buckets(s *store.Store) []Column {
	return GroupByStatus(s.Tasks())
}

// GroupByStatus groups tasks into the three status columns, keeping
// their relative order.
func GroupByStatus(tasks []*task.Task) []Column {
	cols := make([]Column, len(task.Statuses))
	for i, st := range task.Statuses {
		cols[i] = Column{Status: st, Tasks: []*task.Task{}}
	}
	for _, t := range tasks {
		if i := t.Status.Index(); i >= 0 {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// StatusSummary holds metrics for a single status column.
type StatusSummary struct {
	Status   task.Status `json:"status"`
	Count    int         `json:"count"`
	Subtasks int         `json:"subtasks"`
}

// Overview is the aggregate summary shown in status bars and `stats`.
type Overview struct {
	BoardName string           `json:"board_name"`
	Filter    store.FilterMode `json:"filter"`
	Mode      Mode             `json:"mode"`
	Visible   int              `json:"visible"`
	Statuses  []StatusSummary  `json:"statuses"`
	Stats     store.Stats      `json:"stats"`
}

// Summary computes the overview for the current view state.
func (c *Controller) Summary(boardName string, s *store.Store, now time.Time) Overview {
	statuses := make([]StatusSummary, len(task.Statuses))
	for i, col := range c.Buckets(s) {
		statuses[i] = StatusSummary{Status: col.Status, Count: len(col.Tasks)}
		for _, t := range col.Tasks {
			statuses[i].Subtasks += len(t.Subtasks)
		}
	}
	return Overview{
		BoardName: boardName,
		Filter:    c.Filter,
		Mode:      c.Mode,
		Visible:   len(c.Visible(s)),
		Statuses:  statuses,
		Stats:     s.Stats(now),
	}
}
