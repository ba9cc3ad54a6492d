package store

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// timeLayout is ISO-8601 in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// State is the decoded content of the persisted document.
type State struct {
	Tasks     []*task.Task
	Counter   int
	LastSaved *time.Time
}

type document struct {
	Tasks         []*wireTask `json:"tasks"`
	TaskIDCounter int         `json:"taskIdCounter"`
	LastSaved     string      `json:"lastSaved"`
}

type wireTask struct {
	ID          int         `json:"id"`
	Text        string      `json:"text"`
	Status      task.Status `json:"status"`
	Completed   bool        `json:"completed"`
	CreatedAt   string      `json:"createdAt"`
	CompletedAt *string     `json:"completedAt"`
	Subtasks    []*wireTask `json:"subtasks"`
	ParentID    *int        `json:"parentId"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func toWire(tasks []*task.Task) []*wireTask {
	out := make([]*wireTask, 0, len(tasks))
	for _, t := range tasks {
		status := t.Status
		if status == "" {
			status = task.StatusFromCompleted(t.Completed)
		}
		w := &wireTask{
			ID:        t.ID,
			Text:      t.Text,
			Status:    status,
			Completed: t.Completed,
			CreatedAt: formatTime(t.CreatedAt),
			Subtasks:  toWire(t.Subtasks),
			ParentID:  t.ParentID,
		}
		if t.CompletedAt != nil {
			s := formatTime(*t.CompletedAt)
			w.CompletedAt = &s
		}
		out = append(out, w)
	}
	return out
}

// Encode serializes the task forest and counter into the persisted document.
func Encode(tasks []*task.Task, counter int, now time.Time) ([]byte, error) {
	return json.Marshal(document{
		Tasks:         toWire(tasks),
		TaskIDCounter: counter,
		LastSaved:     formatTime(now),
	})
}

// Decode parses a persisted document tolerantly. Missing fields take
// defaults, statuses are normalized, ids missing or duplicated are
// synthesized, and the counter is raised past every id in use.
// Malformed JSON or a non-array tasks field yields an empty State and a
// *CorruptError.
func Decode(data []byte, now time.Time) (State, error) {
	empty := State{Tasks: []*task.Task{}, Counter: 1}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return empty, &CorruptError{Err: err}
	}
	tasksRaw, ok := raw["tasks"]
	if !ok {
		return empty, &CorruptError{Err: errors.New(`missing "tasks" field`)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(tasksRaw, &items); err != nil || items == nil {
		return empty, &CorruptError{Err: errors.New(`"tasks" is not an array`)}
	}

	var counterVal any
	_ = json.Unmarshal(raw["taskIdCounter"], &counterVal)
	stored, ok := intFrom(counterVal)
	if !ok || stored < 1 {
		stored = 1
	}

	d := decoder{now: now, seen: make(map[int]bool)}
	tasks := make([]*task.Task, 0, len(items))
	for _, item := range items {
		var m map[string]any
		if err := json.Unmarshal(item, &m); err != nil || m == nil {
			continue
		}
		tasks = append(tasks, d.task(m, true))
	}

	next := max(stored, d.maxID+1)
	for _, t := range d.pending {
		t.ID = next
		next++
	}
	for _, t := range tasks {
		t.ParentID = nil
		for _, st := range t.Subtasks {
			st.ParentID = &t.ID
		}
	}

	state := State{Tasks: tasks, Counter: next}
	var savedVal any
	_ = json.Unmarshal(raw["lastSaved"], &savedVal)
	if ts, ok := timeFrom(savedVal); ok {
		state.LastSaved = &ts
	}
	return state, nil
}

type decoder struct {
	now     time.Time
	seen    map[int]bool
	maxID   int
	pending []*task.Task
}

func (d *decoder) task(m map[string]any, topLevel bool) *task.Task {
	t := &task.Task{Subtasks: []*task.Task{}}

	if id, ok := intFrom(m["id"]); ok && id > 0 && !d.seen[id] {
		t.ID = id
		d.seen[id] = true
		d.maxID = max(d.maxID, id)
	} else {
		d.pending = append(d.pending, t)
	}

	t.Text = stringFrom(m["text"])
	if t.Text == "" {
		t.Text = stringFrom(m["title"])
	}

	t.Completed = truthy(m["completed"])
	if s, ok := m["status"].(string); ok && strings.TrimSpace(s) != "" {
		if st, err := task.ParseStatus(s); err == nil {
			t.Status = st
			t.Completed = st == task.StatusCompleted
		} else {
			t.Status = task.StatusFromCompleted(t.Completed)
		}
	} else if m["status"] != nil {
		t.Status = task.StatusFromCompleted(t.Completed)
	}

	if ts, ok := timeFrom(m["createdAt"]); ok {
		t.CreatedAt = ts
	} else {
		t.CreatedAt = d.now
	}
	if ts, ok := timeFrom(m["completedAt"]); ok && t.Completed {
		t.CompletedAt = &ts
	}

	if subs, ok := m["subtasks"].([]any); ok && topLevel {
		for _, s := range subs {
			if sm, ok := s.(map[string]any); ok {
				t.Subtasks = append(t.Subtasks, d.task(sm, false))
			}
		}
	}
	return t
}

func intFrom(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < 0 || n > 1<<53 {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func stringFrom(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// truthy coerces a decoded JSON value to a boolean the way loosely typed
// writers of the document did.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0 && !math.IsNaN(b)
	case string:
		return b != ""
	}
	return true
}

func timeFrom(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(x))
		return t, err == nil
	case float64:
		if x <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(x)).UTC(), true
	}
	return time.Time{}, false
}
