package view

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

var testNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

// seed builds a store with one task per status, most recent first:
// todo (not_started), doing (in_progress, 1 subtask), done (completed).
func seed(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, storage.NewMemory(), store.Options{Now: func() time.Time { return testNow }})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, text := range []string{"done", "doing", "todo"} {
		if _, err := s.AddTask(ctx, text); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}
	doing := s.Tasks()[1]
	if _, err := s.AddSubtask(ctx, doing.ID, "half"); err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}
	if _, err := s.UpdateTaskStatus(ctx, doing.ID, task.StatusInProgress); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if _, err := s.ToggleTask(ctx, s.Tasks()[2].ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	return s
}

func TestControllerDefaultsAndSetters(t *testing.T) {
	c := New()
	if c.Filter != store.FilterAll || c.Mode != ModeList {
		t.Fatalf("defaults = %+v", c)
	}
	if err := c.SetFilter("pending"); err != nil || c.Filter != store.FilterPending {
		t.Fatalf("SetFilter: %v (%s)", err, c.Filter)
	}
	if err := c.SetFilter("later"); !clierr.HasCode(err, clierr.InvalidFilter) {
		t.Fatalf("expected INVALID_FILTER, got %v", err)
	}
	if c.Filter != store.FilterPending {
		t.Fatal("rejected filter must not change state")
	}
	if err := c.SetMode("kanban"); !clierr.HasCode(err, clierr.InvalidViewMode) {
		t.Fatalf("expected INVALID_VIEW_MODE, got %v", err)
	}
	if c.ToggleMode() != ModeBoard || c.ToggleMode() != ModeList {
		t.Fatal("ToggleMode must alternate")
	}
	if c.NextFilter() != store.FilterCompleted || c.NextFilter() != store.FilterAll {
		t.Fatal("NextFilter must cycle")
	}
}

func TestVisibleFollowsFilter(t *testing.T) {
	s := seed(t)
	c := New()
	if got := len(c.Visible(s)); got != 3 {
		t.Fatalf("all = %d", got)
	}
	_ = c.SetFilter("pending")
	if got := len(c.Visible(s)); got != 2 {
		t.Fatalf("pending = %d", got)
	}
	_ = c.SetFilter("completed")
	if got := c.Visible(s); len(got) != 1 || got[0].Text != "done" {
		t.Fatalf("completed = %v", got)
	}
}

func TestBucketsIgnoreFilter(t *testing.T) {
	s := seed(t)
	c := New()
	_ = c.SetFilter("completed")

	cols := c.Buckets(s)
	if len(cols) != 3 {
		t.Fatalf("columns = %d", len(cols))
	}
	for i, want := range []string{"todo", "doing", "done"} {
		if cols[i].Status != task.Statuses[i] {
			t.Fatalf("column %d status = %s", i, cols[i].Status)
		}
		if len(cols[i].Tasks) != 1 || cols[i].Tasks[0].Text != want {
			t.Fatalf("column %s = %v", cols[i].Status, cols[i].Tasks)
		}
	}

	sum := c.Summary("demo", s, testNow)
	if sum.Visible != 1 || sum.Statuses[1].Subtasks != 1 || sum.Stats.Total != 3 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestFilterAndSort(t *testing.T) {
	s := seed(t)
	tasks := Filter(s.Tasks(), FilterOptions{Search: "HALF"})
	if len(tasks) != 1 || tasks[0].Text != "doing" {
		t.Fatalf("search must match subtask text: %v", tasks)
	}
	tasks = Filter(s.Tasks(), FilterOptions{Statuses: []task.Status{task.StatusNotStarted, task.StatusCompleted}})
	if len(tasks) != 2 {
		t.Fatalf("status filter = %v", tasks)
	}

	all := s.Tasks()
	Sort(all, "id", false)
	if all[0].Text != "done" {
		t.Fatalf("id sort first = %s", all[0].Text)
	}
	Sort(all, "status", true)
	if all[0].Status != task.StatusCompleted || all[2].Status != task.StatusNotStarted {
		t.Fatalf("reverse status sort = %v", all)
	}
	Sort(all, "completed", false)
	if all[0].CompletedAt == nil {
		t.Fatal("completed tasks sort first")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	if c := Load(dir); c.Filter != store.FilterAll || c.Mode != ModeList {
		t.Fatalf("missing file must load defaults, got %+v", c)
	}

	c := &Controller{Filter: store.FilterCompleted, Mode: ModeBoard}
	if err := c.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(dir); *got != *c {
		t.Fatalf("Load = %+v, want %+v", got, c)
	}

	if err := os.WriteFile(filepath.Join(dir, StateFileName), []byte("filter: bogus\nmode: board\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := Load(dir); got.Filter != store.FilterAll || got.Mode != ModeBoard {
		t.Fatalf("invalid values must fall back per field, got %+v", got)
	}
}
