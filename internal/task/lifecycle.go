package task

import "time"

// Complete marks t completed at now. CompletedAt is only stamped when t
// was not already completed.
func Complete(t *Task, now time.Time) {
	if !t.Completed || t.CompletedAt == nil {
		at := now
		t.CompletedAt = &at
	}
	t.Completed = true
	t.Status = StatusCompleted
}

// Reopen moves t out of the completed state into status, clearing
// CompletedAt. status must not be StatusCompleted.
func Reopen(t *Task, status Status) {
	t.Completed = false
	t.CompletedAt = nil
	t.Status = status
}

// SetStatus applies a status transition to t alone, keeping Completed and
// CompletedAt consistent with the new status.
//   - Entering completed stamps CompletedAt.
//   - Leaving completed clears Completed and CompletedAt.
//   - Moving between not_started and in_progress changes only Status.
func SetStatus(t *Task, status Status, now time.Time) {
	if status == StatusCompleted {
		Complete(t, now)
		return
	}
	Reopen(t, status)
}

// CompleteSubtasks completes every subtask of t that is not already completed.
func CompleteSubtasks(t *Task, now time.Time) {
	for _, st := range t.Subtasks {
		if !st.Completed {
			Complete(st, now)
		}
	}
}

// ResetSubtasks returns every subtask of t to not_started.
func ResetSubtasks(t *Task) {
	for _, st := range t.Subtasks {
		Reopen(st, StatusNotStarted)
	}
}

// StatusFromCompleted derives the status implied by a completion flag.
func StatusFromCompleted(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusNotStarted
}
