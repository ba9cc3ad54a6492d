// Package task defines the task model, its status lifecycle, and the
// input rules every task text must pass.
package task

import (
	"strings"
	"time"
)

// Status is the workflow state of a task.
type Status string

// The three workflow states, in board column order.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in column order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// legacyStatuses maps spellings written by older data files and accepted
// on the command line to their canonical status.
var legacyStatuses = map[string]Status{
	"todo":        StatusNotStarted,
	"pending":     StatusNotStarted,
	"not-started": StatusNotStarted,
	"notstarted":  StatusNotStarted,
	"inprogress":  StatusInProgress,
	"in-progress": StatusInProgress,
	"doing":       StatusInProgress,
	"done":        StatusCompleted,
}

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable column heading for s.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// Index returns the column position of s, or -1 if s is not valid.
func (s Status) Index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus resolves user or stored input to a Status. It accepts the
// canonical names plus the legacy spellings in legacyStatuses,
// case-insensitively.
func ParseStatus(input string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if st := Status(s); st.IsValid() {
		return st, nil
	}
	if st, ok := legacyStatuses[s]; ok {
		return st, nil
	}
	return "", ValidateStatus(input)
}

// Task is a unit of work. Top-level tasks own their subtasks; a subtask
// carries the id of its parent in ParentID and never has subtasks itself.
type Task struct {
	ID          int        `json:"id"`
	Text        string     `json:"text"`
	Status      Status     `json:"status"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Subtasks    []*Task    `json:"subtasks"`
	ParentID    *int       `json:"parentId"`
}

// IsSubtask reports whether t belongs to a parent.
func (t *Task) IsSubtask() bool { return t.ParentID != nil }

// SubtaskProgress returns the number of completed subtasks and the total.
func (t *Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// AllSubtasksCompleted reports whether t has at least one subtask and
// every subtask is completed.
func (t *Task) AllSubtasksCompleted() bool {
	done, total := t.SubtaskProgress()
	return total > 0 && done == total
}

// Subtask returns the direct subtask with the given id, or nil.
func (t *Task) Subtask(id int) *Task {
	for _, st := range t.Subtasks {
		if st.ID == id {
			return st
		}
	}
	return nil
}
