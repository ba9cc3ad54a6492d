package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// Mutations validate first and change nothing on a validation error. Once
// applied, a mutation is persisted; a persistence failure is returned as a
// *SaveError alongside the result, and the in-memory change stands.

// AddTask creates a top-level task at the front of the collection.
func (s *Store) AddTask(ctx context.Context, raw string) (*task.Task, error) {
	text := task.NormalizeText(raw)
	if err := task.ValidateText(text, s.opts.MaxTextLength); err != nil {
		return nil, err
	}
	for _, t := range s.tasks {
		if task.SameText(t.Text, text) {
			return nil, task.ValidateDuplicate(text, t.ID, nil)
		}
	}

	t := s.newTask(text)
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.record("add", t.ID, text)
	return t, s.save(ctx)
}

// AddSubtask appends a subtask to the top-level task parentID.
func (s *Store) AddSubtask(ctx context.Context, parentID int, raw string) (*task.Task, error) {
	parent := s.topLevel(parentID)
	if parent == nil {
		return nil, task.ValidateParentNotFound(parentID)
	}
	text := task.NormalizeText(raw)
	if err := task.ValidateText(text, s.opts.MaxSubtaskLength); err != nil {
		return nil, err
	}
	for _, st := range parent.Subtasks {
		if task.SameText(st.Text, text) {
			return nil, task.ValidateDuplicate(text, st.ID, &parent.ID)
		}
	}

	st := s.newTask(text)
	st.ParentID = &parent.ID
	parent.Subtasks = append(parent.Subtasks, st)
	s.record("add-subtask", st.ID, fmt.Sprintf("parent #%d: %s", parent.ID, text))
	return st, s.save(ctx)
}

func (s *Store) newTask(text string) *task.Task {
	t := &task.Task{
		ID:        s.counter,
		Text:      text,
		Status:    task.StatusNotStarted,
		CreatedAt: s.opts.Now(),
		Subtasks:  []*task.Task{},
	}
	s.counter++
	return t
}

// ToggleTask flips completion of the task with the given id. Completing
// cascades to its subtasks; un-completing resets the task and its
// subtasks to not_started. Toggling a subtask may promote its parent.
// An unknown id is a no-op returning nil.
func (s *Store) ToggleTask(ctx context.Context, id int) (*task.Task, error) {
	t, parent := s.locate(id)
	if t == nil {
		return nil, nil
	}

	now := s.opts.Now()
	if t.Completed {
		task.Reopen(t, task.StatusNotStarted)
		task.ResetSubtasks(t)
	} else {
		task.Complete(t, now)
		task.CompleteSubtasks(t, now)
	}
	s.record("toggle", t.ID, string(t.Status))
	if parent != nil {
		s.promote(parent)
	}
	return t, s.save(ctx)
}

// UpdateTaskStatus moves the task with the given id to status. Entering
// completed cascades completion to subtasks and may promote a parent;
// leaving completed resets subtasks to not_started. Setting the current
// status, or an unknown id, is a no-op.
func (s *Store) UpdateTaskStatus(ctx context.Context, id int, status task.Status) (*task.Task, error) {
	if !status.IsValid() {
		return nil, task.ValidateStatus(string(status))
	}
	t, parent := s.locate(id)
	if t == nil {
		return nil, nil
	}
	if t.Status == status {
		return t, nil
	}

	prev := t.Status
	now := s.opts.Now()
	task.SetStatus(t, status, now)
	switch {
	case status == task.StatusCompleted:
		task.CompleteSubtasks(t, now)
	case prev == task.StatusCompleted:
		task.ResetSubtasks(t)
	}
	s.record("move", t.ID, fmt.Sprintf("%s -> %s", prev, status))
	if parent != nil && status == task.StatusCompleted {
		s.promote(parent)
	}
	return t, s.save(ctx)
}

// promote completes parent once every subtask is completed. It never
// moves a parent out of completed.
func (s *Store) promote(parent *task.Task) {
	if parent.Completed || !parent.AllSubtasksCompleted() {
		return
	}
	task.Complete(parent, s.opts.Now())
	s.record("auto-complete", parent.ID, "all subtasks completed")
}

// DeleteTask removes the task with the given id along with its subtasks,
// and scrubs the id from every remaining subtask list. It reports whether
// anything was removed.
func (s *Store) DeleteTask(ctx context.Context, id int) (bool, error) {
	removed := false
	s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool {
		if t.ID == id {
			removed = true
			return true
		}
		return false
	})
	for _, t := range s.tasks {
		before := len(t.Subtasks)
		t.Subtasks = slices.DeleteFunc(t.Subtasks, func(st *task.Task) bool { return st.ID == id })
		if len(t.Subtasks) != before {
			removed = true
		}
	}
	if !removed {
		return false, nil
	}
	s.record("delete", id, "")
	return true, s.save(ctx)
}

// ClearCompleted removes every completed top-level task and returns how
// many were removed. Zero removes nothing and skips the save.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool {
		return t.Status == task.StatusCompleted
	})
	n := before - len(s.tasks)
	if n == 0 {
		return 0, nil
	}
	s.record("clear-completed", 0, fmt.Sprintf("%d tasks", n))
	return n, s.save(ctx)
}

// ClearAll removes every task and returns how many top-level tasks were
// removed. The id counter is kept so ids are never reused.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	n := len(s.tasks)
	if n == 0 {
		return 0, nil
	}
	s.tasks = []*task.Task{}
	s.record("clear-all", 0, fmt.Sprintf("%d tasks", n))
	return n, s.save(ctx)
}
