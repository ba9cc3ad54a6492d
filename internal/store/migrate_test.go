package store

import (
	"context"
	"testing"

	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

func TestMigrateBackfillsAndIsIdempotent(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, Completed: true, Subtasks: []*task.Task{{ID: 2}, {ID: 3, Status: task.StatusInProgress}}},
		{ID: 4, Status: task.StatusNotStarted},
	}
	if n := Migrate(tasks); n != 2 {
		t.Fatalf("first Migrate = %d, want 2", n)
	}
	if tasks[0].Status != task.StatusCompleted || tasks[0].Subtasks[0].Status != task.StatusNotStarted {
		t.Fatalf("backfill wrong: %+v", tasks[0])
	}
	if tasks[0].Subtasks[1].Status != task.StatusInProgress {
		t.Fatal("existing status must be kept")
	}
	if n := Migrate(tasks); n != 0 {
		t.Fatalf("second Migrate = %d, want 0", n)
	}
}

func TestOpenResavesAfterMigration(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryWith([]byte(`{"tasks":[{"id":1,"text":"old","completed":true}],"taskIdCounter":2}`))
	rec := &memRecorder{}

	s, err := Open(ctx, mem, Options{Recorder: rec})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if mem.Saves() != 1 {
		t.Fatalf("Saves = %d, want 1 after migration", mem.Saves())
	}
	if got := s.FindByID(1).Status; got != task.StatusCompleted {
		t.Fatalf("status = %s", got)
	}
	if len(rec.entries) != 1 || rec.entries[0].action != "migrate" {
		t.Fatalf("entries = %v", rec.entries)
	}

	if _, err := Open(ctx, mem, Options{}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if mem.Saves() != 1 {
		t.Fatal("migrated data must not be re-saved")
	}
}
