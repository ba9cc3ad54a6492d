package store

import (
	"math"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// Tasks returns the top-level tasks, most recent first.
func (s *Store) Tasks() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// FindByID returns the task or subtask with the given id, or nil.
func (s *Store) FindByID(id int) *task.Task {
	t, _ := s.locate(id)
	return t
}

// Parent returns the parent of a subtask, or nil for top-level or unknown ids.
func (s *Store) Parent(id int) *task.Task {
	_, p := s.locate(id)
	return p
}

// locate searches the top level, then one level into subtasks.
func (s *Store) locate(id int) (t, parent *task.Task) {
	if t := s.topLevel(id); t != nil {
		return t, nil
	}
	for _, p := range s.tasks {
		if st := p.Subtask(id); st != nil {
			return st, p
		}
	}
	return nil, nil
}

func (s *Store) topLevel(id int) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Counts tallies every task in the forest, subtasks included.
type Counts struct {
	All        int `json:"all"`
	Pending    int `json:"pending"`
	Completed  int `json:"completed"`
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
}

// Stats summarizes the store. The top-level figures count top-level tasks
// only; Counts covers the whole forest.
type Stats struct {
	Date           date.Date `json:"date"`
	Total          int       `json:"total"`
	Completed      int       `json:"completed"`
	Pending        int       `json:"pending"`
	CompletedToday int       `json:"completed_today"`
	CreatedToday   int       `json:"created_today"`
	CompletionRate int       `json:"completion_rate"`
	Counts         Counts    `json:"counts"`
}

// Stats computes statistics with "today" taken as the calendar day of now.
func (s *Store) Stats(now time.Time) Stats {
	day := date.Of(now)
	loc := now.Location()
	st := Stats{Date: day, Total: len(s.tasks)}

	for _, t := range s.tasks {
		if t.Status == task.StatusCompleted {
			st.Completed++
			if t.CompletedAt != nil && day.Contains(*t.CompletedAt, loc) {
				st.CompletedToday++
			}
		}
		if day.Contains(t.CreatedAt, loc) {
			st.CreatedToday++
		}
		st.Counts.add(t)
		for _, sub := range t.Subtasks {
			st.Counts.add(sub)
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) * 100 / float64(st.Total)))
	}
	return st
}

func (c *Counts) add(t *task.Task) {
	c.All++
	switch t.Status {
	case task.StatusCompleted:
		c.Completed++
	case task.StatusInProgress:
		c.InProgress++
		c.Pending++
	default:
		c.NotStarted++
		c.Pending++
	}
}
