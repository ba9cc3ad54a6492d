package task

import (
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"not_started": StatusNotStarted,
		"In_Progress": StatusInProgress,
		"completed":   StatusCompleted,
		"todo":        StatusNotStarted,
		"in-progress": StatusInProgress,
		"inProgress":  StatusInProgress,
		" done ":      StatusCompleted,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}

	_, err := ParseStatus("archived")
	if !clierr.HasCode(err, clierr.InvalidStatus) {
		t.Fatalf("expected INVALID_STATUS, got %v", err)
	}
}

func TestSetStatusKeepsCompletedInSync(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	tk := &Task{ID: 1, Text: "write tests", Status: StatusNotStarted}

	SetStatus(tk, StatusInProgress, now)
	if tk.Completed || tk.CompletedAt != nil || tk.Status != StatusInProgress {
		t.Fatalf("unexpected state after in_progress: %+v", tk)
	}

	SetStatus(tk, StatusCompleted, now)
	if !tk.Completed || tk.CompletedAt == nil || !tk.CompletedAt.Equal(now) {
		t.Fatalf("expected completed with timestamp, got %+v", tk)
	}

	later := now.Add(time.Hour)
	Complete(tk, later)
	if !tk.CompletedAt.Equal(now) {
		t.Fatalf("re-completing should keep the first timestamp, got %v", tk.CompletedAt)
	}

	SetStatus(tk, StatusInProgress, later)
	if tk.Completed || tk.CompletedAt != nil {
		t.Fatalf("expected completion cleared, got %+v", tk)
	}
}

func TestSubtaskHelpers(t *testing.T) {
	parent := &Task{ID: 1, Subtasks: []*Task{
		{ID: 2, Status: StatusNotStarted},
		{ID: 3, Status: StatusNotStarted},
	}}
	if parent.AllSubtasksCompleted() {
		t.Fatal("no subtask is completed yet")
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	CompleteSubtasks(parent, now)
	if !parent.AllSubtasksCompleted() {
		t.Fatal("expected every subtask completed")
	}
	if done, total := parent.SubtaskProgress(); done != 2 || total != 2 {
		t.Fatalf("progress = %d/%d", done, total)
	}

	ResetSubtasks(parent)
	for _, st := range parent.Subtasks {
		if st.Status != StatusNotStarted || st.Completed || st.CompletedAt != nil {
			t.Fatalf("subtask not reset: %+v", st)
		}
	}

	if (&Task{}).AllSubtasksCompleted() {
		t.Fatal("a task without subtasks is never auto-completable")
	}
	if parent.Subtask(3) == nil || parent.Subtask(9) != nil {
		t.Fatal("Subtask lookup mismatch")
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("", 200); !clierr.HasCode(err, clierr.EmptyText) {
		t.Fatalf("expected EMPTY_TEXT, got %v", err)
	}
	if err := ValidateText(strings.Repeat("a", 200), 200); err != nil {
		t.Fatalf("200 chars should pass: %v", err)
	}
	if err := ValidateText(strings.Repeat("a", 201), 200); !clierr.HasCode(err, clierr.TextTooLong) {
		t.Fatalf("expected TEXT_TOO_LONG, got %v", err)
	}
	// Limits count characters, not bytes.
	if err := ValidateText(strings.Repeat("é", 200), 200); err != nil {
		t.Fatalf("multibyte text within limit rejected: %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  buy milk  ":                "buy milk",
		"<b>bold</b> move":            "bold move",
		"<script>alert(1)</script>ok": "ok",
		"fish &amp; chips":            "fish & chips",
		"line\none\ttab":              "line one tab",
		"   ":                         "",
		"Buy   milk":                  "Buy   milk",
	}
	for in, want := range cases {
		if got := NormalizeText(in); got != want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
	if SameText("Buy   milk", "Buy milk") {
		t.Fatal("inner spacing must not be collapsed for duplicates")
	}
	if !SameText("Buy Milk", "buy milk") {
		t.Fatal("duplicate comparison must be case-insensitive")
	}
}
