package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

func newTestBoard(t *testing.T) (*Board, *store.Store) {
	t.Helper()
	ctx := context.Background()

	cfg := config.NewDefault("test")
	cfg.SetDir(t.TempDir())

	s, err := store.Open(ctx, storage.NewMemory(), store.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b := NewBoard(ctx, cfg, s)
	b.SetNow(func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) })
	b.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return b, s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(b *Board, msgs ...tea.Msg) {
	for _, m := range msgs {
		b.Update(m)
	}
}

func TestAddTaskThroughInput(t *testing.T) {
	b, s := newTestBoard(t)

	press(b, runes("a"), runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("tasks = %+v, want one task 'Buy milk'", tasks)
	}
	if b.screen != screenMain {
		t.Errorf("screen = %v, want main", b.screen)
	}
	if !strings.Contains(b.View(), "Buy milk") {
		t.Errorf("view does not show the new task:\n%s", b.View())
	}
}

func TestAddSubtaskAndToggle(t *testing.T) {
	b, s := newTestBoard(t)

	press(b, runes("a"), runes("Trip"), tea.KeyMsg{Type: tea.KeyEnter})
	press(b, runes("s"), runes("Pack"), tea.KeyMsg{Type: tea.KeyEnter})

	parent := s.Tasks()[0]
	if len(parent.Subtasks) != 1 {
		t.Fatalf("subtasks = %d, want 1", len(parent.Subtasks))
	}

	// Row 1 is the subtask; completing it promotes the parent.
	press(b, runes("j"), tea.KeyMsg{Type: tea.KeySpace})

	parent = s.FindByID(parent.ID)
	if !parent.Completed || parent.Status != task.StatusCompleted {
		t.Errorf("parent status = %s, want completed", parent.Status)
	}
}

func TestEscCancelsInput(t *testing.T) {
	b, s := newTestBoard(t)

	press(b, runes("a"), runes("Nope"), tea.KeyMsg{Type: tea.KeyEsc})

	if len(s.Tasks()) != 0 {
		t.Errorf("tasks = %d, want 0", len(s.Tasks()))
	}
	if b.screen != screenMain {
		t.Errorf("screen = %v, want main", b.screen)
	}
}

func TestEmptyInputShowsError(t *testing.T) {
	b, _ := newTestBoard(t)

	press(b, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	if !clierr.HasCode(b.err, clierr.EmptyText) {
		t.Errorf("err = %v, want EMPTY_TEXT", b.err)
	}
}

func TestToggleModePersistsView(t *testing.T) {
	b, _ := newTestBoard(t)

	press(b, tea.KeyMsg{Type: tea.KeyTab})

	if b.ctrl.Mode != view.ModeBoard {
		t.Fatalf("mode = %s, want board", b.ctrl.Mode)
	}
	if got := view.Load(b.cfg.Dir()); got.Mode != view.ModeBoard {
		t.Errorf("saved mode = %s, want board", got.Mode)
	}

	press(b, runes("f"))
	if got := view.Load(b.cfg.Dir()); got.Filter != store.FilterPending {
		t.Errorf("saved filter = %s, want pending", got.Filter)
	}
}

func TestMoveBetweenColumns(t *testing.T) {
	b, s := newTestBoard(t)
	press(b, runes("a"), runes("Write"), tea.KeyMsg{Type: tea.KeyEnter})
	press(b, tea.KeyMsg{Type: tea.KeyTab})

	press(b, runes("H"))
	if !clierr.HasCode(b.err, clierr.BoundaryError) {
		t.Fatalf("err = %v, want BOUNDARY_ERROR", b.err)
	}

	press(b, runes("L"))
	if got := s.Tasks()[0].Status; got != task.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", got)
	}
	if b.activeCol != 1 || b.selectedTask() == nil {
		t.Errorf("cursor did not follow the task: col %d", b.activeCol)
	}

	press(b, runes("L"))
	if got := s.Tasks()[0]; !got.Completed {
		t.Errorf("task not completed after second move")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	b, s := newTestBoard(t)
	press(b, runes("a"), runes("Temp"), tea.KeyMsg{Type: tea.KeyEnter})

	press(b, runes("d"))
	if b.screen != screenConfirmDelete {
		t.Fatalf("screen = %v, want delete confirmation", b.screen)
	}
	press(b, runes("n"))
	if len(s.Tasks()) != 1 {
		t.Fatalf("task deleted without confirmation")
	}

	press(b, runes("d"), runes("y"))
	if len(s.Tasks()) != 0 {
		t.Errorf("tasks = %d, want 0", len(s.Tasks()))
	}
}

func TestClearAllKeepsCounter(t *testing.T) {
	b, s := newTestBoard(t)
	press(b, runes("a"), runes("One"), tea.KeyMsg{Type: tea.KeyEnter})
	press(b, runes("a"), runes("Two"), tea.KeyMsg{Type: tea.KeyEnter})

	press(b, runes("C"), runes("y"))
	if len(s.Tasks()) != 0 {
		t.Fatalf("tasks = %d, want 0", len(s.Tasks()))
	}
	if s.Counter() != 3 {
		t.Errorf("counter = %d, want 3", s.Counter())
	}
}

func TestExportWritesBackup(t *testing.T) {
	b, _ := newTestBoard(t)
	press(b, runes("a"), runes("Keep"), tea.KeyMsg{Type: tea.KeyEnter})

	press(b, runes("e"))

	path := filepath.Join(b.cfg.Dir(), "tasks_backup_2026-03-04.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `"Keep"`) {
		t.Errorf("export missing task:\n%s", data)
	}
}

func TestSaveFailureKeepsSessionState(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewDefault("test")
	cfg.SetDir(t.TempDir())
	mem := storage.NewMemory()
	s, err := store.Open(ctx, mem, store.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b := NewBoard(ctx, cfg, s)
	b.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	mem.FailSaves(storage.ErrQuotaExceeded)
	press(b, runes("a"), runes("First"), tea.KeyMsg{Type: tea.KeyEnter})
	if !errors.Is(b.err, storage.ErrQuotaExceeded) {
		t.Errorf("err = %v, want quota exceeded", b.err)
	}
	press(b, runes("a"), runes("Second"), tea.KeyMsg{Type: tea.KeyEnter})
	press(b, ReloadMsg{})

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2 kept in memory", len(tasks))
	}
	if tasks[0].ID == tasks[1].ID {
		t.Fatalf("id #%d reused", tasks[0].ID)
	}

	mem.FailSaves(nil)
	press(b, runes("r"))
	if b.err != nil || s.Unsaved() {
		t.Fatalf("after recovery: err=%v unsaved=%v", b.err, s.Unsaved())
	}
	again, err := store.Open(ctx, mem, store.Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(again.Tasks()) != 2 {
		t.Errorf("persisted tasks = %d, want 2", len(again.Tasks()))
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five six", 9, 2)
	if len(got) != 2 {
		t.Fatalf("lines = %q, want 2", got)
	}
	if !strings.HasSuffix(got[1], "...") {
		t.Errorf("last line %q not truncated", got[1])
	}

	if got := wrapText("short", 20, 2); len(got) != 1 || got[0] != "short" {
		t.Errorf("wrapText(short) = %q", got)
	}
}
