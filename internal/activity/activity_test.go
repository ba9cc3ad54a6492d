package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRead(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	l.now = func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) }

	l.Record("add", 1, "write docs")
	l.Record("toggle", 1, "completed")
	l.Record("clear-completed", 0, "1 tasks")

	entries, err := Read(dir, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Action != "add" || entries[0].TaskID != 1 || entries[0].Detail != "write docs" {
		t.Fatalf("first entry = %+v", entries[0])
	}

	last, err := Read(dir, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(last) != 1 || last[0].Action != "clear-completed" {
		t.Fatalf("limited read = %+v", last)
	}
}

func TestReadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir, 0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("missing log = %v, %v", entries, err)
	}

	content := "{\"action\":\"add\",\"task_id\":1}\nnot json\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	entries, err = Read(dir, 0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("malformed lines must be skipped: %v, %v", entries, err)
	}
}

func TestTruncate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 15 {
		fmt.Fprintf(f, "{\"action\":\"add\",\"task_id\":%d}\n", i+1)
	}
	_ = f.Close()

	if err := truncateIfNeeded(path, 10); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	entries, err := Read(dir, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 10 || entries[0].TaskID != 6 {
		t.Fatalf("kept %d entries starting at %d", len(entries), entries[0].TaskID)
	}
}
