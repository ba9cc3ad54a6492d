package store

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

func TestExport(t *testing.T) {
	s, mem := newTestStore(t)
	p := mustAdd(t, s, "P")
	mustAddSub(t, s, p.ID, "A")
	saves := mem.Saves()

	var buf bytes.Buffer
	if err := s.Export(&buf, testNow); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if mem.Saves() != saves {
		t.Fatal("export must not write the store")
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"tasks\"")) {
		t.Fatalf("export is not pretty-printed:\n%s", buf.String())
	}

	var doc struct {
		Tasks []struct {
			ID       int `json:"id"`
			Subtasks []struct {
				Text string `json:"text"`
			} `json:"subtasks"`
		} `json:"tasks"`
		ExportDate string `json:"exportDate"`
		Version    string `json:"version"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Version != "1.0" || doc.ExportDate != "2026-02-09T12:00:00.000Z" {
		t.Fatalf("header = %q %q", doc.Version, doc.ExportDate)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].ID != p.ID || doc.Tasks[0].Subtasks[0].Text != "A" {
		t.Fatalf("tasks = %+v", doc.Tasks)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 30, 0, 0, time.FixedZone("X", -3*60*60))
	if got := ExportFileName(now); got != "tasks_backup_2026-10-20.json" {
		t.Fatalf("ExportFileName = %s", got)
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	mustAdd(t, s, "c")
	sub := mustAddSub(t, s, b.ID, "b1")
	mustAddSub(t, s, b.ID, "b2")
	_, _ = s.ToggleTask(ctx, a.ID)
	_, _ = s.UpdateTaskStatus(ctx, sub.ID, task.StatusInProgress)

	st := s.Stats(testNow)
	if st.Total != 3 || st.Completed != 1 || st.Pending != 2 {
		t.Fatalf("top-level = %+v", st)
	}
	if st.CompletedToday != 1 || st.CreatedToday != 3 {
		t.Fatalf("today = %d completed, %d created", st.CompletedToday, st.CreatedToday)
	}
	if st.CompletionRate != 33 {
		t.Fatalf("rate = %d, want 33", st.CompletionRate)
	}
	want := Counts{All: 5, Pending: 4, Completed: 1, NotStarted: 3, InProgress: 1}
	if st.Counts != want {
		t.Fatalf("counts = %+v, want %+v", st.Counts, want)
	}

	tomorrow := s.Stats(testNow.Add(24 * time.Hour))
	if tomorrow.CreatedToday != 0 || tomorrow.CompletedToday != 0 {
		t.Fatalf("tomorrow = %+v", tomorrow)
	}
	if empty := (&Store{}).Stats(testNow); empty.CompletionRate != 0 {
		t.Fatal("empty store rate must be 0")
	}
}
