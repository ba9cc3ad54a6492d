// Package tui implements a terminal UI for tasktrack boards.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/filelock"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

// screen represents the current screen state.
type screen int

const (
	screenMain screen = iota
	screenInput
	screenConfirmDelete
	screenConfirmClearAll
)

const (
	keyEsc      = "esc"
	lockTimeout = 2 * time.Second
)

// Board is the top-level bubbletea model.
type Board struct {
	ctx    context.Context
	cfg    *config.Config
	store  *store.Store
	ctrl   *view.Controller
	screen screen
	width  int
	height int
	err    error
	notice string
	now    func() time.Time

	// List mode: flattened rows, subtasks under their parent.
	rows    []row
	listRow int

	// Board mode: one column per status.
	columns   []view.Column
	activeCol int
	activeRow int

	// Text entry for new tasks; inputParent is 0 for a top-level task.
	input       textinput.Model
	inputParent int

	// Delete confirmation.
	deleteID   int
	deleteText string

	// Clear all confirmation.
	clearAllCount int
}

// row is one line of the list view.
type row struct {
	task    *task.Task
	subtask bool
}

// NewBoard creates a Board over an open store. The view controller is
// read from and saved to the board directory.
func NewBoard(ctx context.Context, cfg *config.Config, s *store.Store) *Board {
	ti := textinput.New()
	ti.Prompt = "> "

	b := &Board{
		ctx:   ctx,
		cfg:   cfg,
		store: s,
		ctrl:  view.Load(cfg.Dir()),
		now:   time.Now,
		input: ti,
	}
	b.refresh()
	return b
}

// SetNow overrides the clock used for exports and stats (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.input.Width = max(msg.Width-10, 10) //nolint:mnd // prompt and border room
		return b, nil
	case ReloadMsg:
		b.reload()
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.screen {
	case screenConfirmDelete:
		return b.viewDeleteConfirm()
	case screenConfirmClearAll:
		return b.viewClearAllConfirm()
	case screenInput:
		return b.viewInput()
	default:
		return b.viewMain()
	}
}

// WatchPaths returns the files whose changes should trigger a reload.
func (b *Board) WatchPaths() []string {
	return b.cfg.WatchPaths()
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.screen {
	case screenMain:
		return b.handleMainKey(msg)
	case screenInput:
		return b.handleInputKey(msg)
	case screenConfirmDelete:
		return b.handleDeleteKey(msg)
	case screenConfirmClearAll:
		return b.handleClearAllKey(msg)
	}

	return b, nil
}

func (b *Board) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.notice = ""
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "tab":
		b.ctrl.ToggleMode()
		b.saveView()
		b.refresh()
	case "f":
		b.ctrl.NextFilter()
		b.saveView()
		b.refresh()
	case "h", "left":
		if b.ctrl.Mode == view.ModeBoard && b.activeCol > 0 {
			b.activeCol--
			b.clamp()
		}
	case "l", "right":
		if b.ctrl.Mode == view.ModeBoard && b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clamp()
		}
	case "j", "down":
		b.moveCursor(1)
	case "k", "up":
		b.moveCursor(-1)
	case " ", "x":
		if t := b.selectedTask(); t != nil {
			id := t.ID
			b.mutate(func(ctx context.Context) error {
				_, err := b.store.ToggleTask(ctx, id)
				return err
			})
		}
	case "H":
		b.shiftSelected(-1)
	case "L":
		b.shiftSelected(1)
	case "a":
		b.startInput(0)
	case "s":
		if t := b.selectedTask(); t != nil {
			parent := t.ID
			if t.ParentID != nil {
				parent = *t.ParentID
			}
			b.startInput(parent)
		}
	case "d", "D":
		b.handleDeleteStart()
	case "c":
		b.mutate(func(ctx context.Context) error {
			n, err := b.store.ClearCompleted(ctx)
			if n == 0 {
				b.notice = "No completed tasks to clear"
			} else {
				b.notice = fmt.Sprintf("Cleared %d completed tasks", n)
			}
			return err
		})
	case "C":
		b.handleClearAllStart()
	case "e":
		b.export()
	case "r":
		b.reload()
	}
	return b, nil
}

func (b *Board) moveCursor(delta int) {
	if b.ctrl.Mode == view.ModeBoard {
		b.activeRow += delta
	} else {
		b.listRow += delta
	}
	b.clamp()
}

// shiftSelected moves the selected task one status left or right.
func (b *Board) shiftSelected(delta int) {
	t := b.selectedTask()
	if t == nil {
		return
	}
	i := t.Status.Index() + delta
	if i < 0 || i >= len(task.Statuses) {
		direction := "last"
		if delta < 0 {
			direction = "first"
		}
		b.err = task.ValidateBoundaryError(t.ID, t.Status, direction)
		return
	}
	id, target := t.ID, task.Statuses[i]
	b.mutate(func(ctx context.Context) error {
		_, err := b.store.UpdateTaskStatus(ctx, id, target)
		return err
	})
	if b.ctrl.Mode == view.ModeBoard && b.err == nil {
		b.activeCol = i
		b.selectID(id)
	}
}

func (b *Board) startInput(parent int) {
	limit, subLimit := b.store.Limits()
	b.inputParent = parent
	b.input.Reset()
	b.input.CharLimit = limit
	b.input.Placeholder = "What needs to be done?"
	if parent > 0 {
		b.input.CharLimit = subLimit
		b.input.Placeholder = fmt.Sprintf("Subtask for #%d", parent)
	}
	b.input.Focus()
	b.screen = screenInput
}

func (b *Board) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		b.input.Blur()
		b.screen = screenMain
		return b, nil
	case "enter":
		text, parent := b.input.Value(), b.inputParent
		b.input.Blur()
		b.screen = screenMain
		b.mutate(func(ctx context.Context) error {
			if parent > 0 {
				_, err := b.store.AddSubtask(ctx, parent, text)
				return err
			}
			_, err := b.store.AddTask(ctx, text)
			return err
		})
		return b, nil
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) handleDeleteStart() {
	t := b.selectedTask()
	if t == nil {
		return
	}
	b.deleteID = t.ID
	b.deleteText = t.Text
	if !b.cfg.ConfirmDelete() {
		b.executeDelete()
		return
	}
	b.screen = screenConfirmDelete
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.executeDelete()
	case "n", "N", keyEsc, "q":
		b.screen = screenMain
	}
	return b, nil
}

func (b *Board) executeDelete() {
	id := b.deleteID
	b.screen = screenMain
	b.mutate(func(ctx context.Context) error {
		_, err := b.store.DeleteTask(ctx, id)
		return err
	})
}

func (b *Board) handleClearAllStart() {
	b.clearAllCount = len(b.store.Tasks())
	if b.clearAllCount > 0 {
		b.screen = screenConfirmClearAll
	}
}

func (b *Board) handleClearAllKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.screen = screenMain
		b.mutate(func(ctx context.Context) error {
			_, err := b.store.ClearAll(ctx)
			return err
		})
	case "n", "N", keyEsc, "q":
		b.screen = screenMain
	}
	return b, nil
}

// export writes a backup next to the board config.
func (b *Board) export() {
	now := b.now()
	path := filepath.Join(b.cfg.Dir(), store.ExportFileName(now))
	f, err := os.Create(path) //nolint:gosec // path inside the board directory
	if err != nil {
		b.err = fmt.Errorf("creating export: %w", err)
		return
	}
	defer f.Close()
	if err := b.store.Export(f, now); err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.notice = "Exported to " + path
}

// mutate runs fn under the board lock against freshly loaded data, so
// concurrent CLI writes are not lost.
func (b *Board) mutate(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(b.ctx, lockTimeout)
	defer cancel()

	lock, err := filelock.Acquire(ctx, b.cfg.LockPath())
	if err != nil {
		b.err = fmt.Errorf("locking board: %w", err)
		return
	}
	defer func() { _ = lock.Release() }()

	// A pending save failure keeps memory authoritative: mutate anyway and
	// let fn's own save retry the write.
	if err := b.store.Reload(ctx); err != nil && !store.IsSaveError(err) {
		b.err = err
		return
	}
	b.err = fn(ctx)
	b.refresh()
}

func (b *Board) reload() {
	if err := b.store.Reload(b.ctx); err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.refresh()
}

func (b *Board) saveView() {
	if err := b.ctrl.Save(b.cfg.Dir()); err != nil {
		b.err = err
	}
}

// refresh rebuilds rows and columns from the store.
func (b *Board) refresh() {
	if warnings := b.store.Warnings(); len(warnings) > 0 {
		b.err = warnings[0]
	}

	b.rows = b.rows[:0]
	for _, t := range b.ctrl.Visible(b.store) {
		b.rows = append(b.rows, row{task: t})
		for _, st := range t.Subtasks {
			b.rows = append(b.rows, row{task: st, subtask: true})
		}
	}
	b.columns = b.ctrl.Buckets(b.store)
	b.clamp()
}

func (b *Board) selectedTask() *task.Task {
	if b.ctrl.Mode == view.ModeBoard {
		if b.activeCol < 0 || b.activeCol >= len(b.columns) {
			return nil
		}
		col := b.columns[b.activeCol]
		if b.activeRow >= 0 && b.activeRow < len(col.Tasks) {
			return col.Tasks[b.activeRow]
		}
		return nil
	}
	if b.listRow >= 0 && b.listRow < len(b.rows) {
		return b.rows[b.listRow].task
	}
	return nil
}

// selectID moves the board cursor onto id within the active column.
func (b *Board) selectID(id int) {
	if b.activeCol >= len(b.columns) {
		return
	}
	for i, t := range b.columns[b.activeCol].Tasks {
		if t.ID == id {
			b.activeRow = i
			return
		}
	}
}

func (b *Board) clamp() {
	b.listRow = clampIndex(b.listRow, len(b.rows))
	b.activeCol = clampIndex(b.activeCol, len(b.columns))
	n := 0
	if b.activeCol < len(b.columns) {
		n = len(b.columns[b.activeCol].Tasks)
	}
	b.activeRow = clampIndex(b.activeRow, n)
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}
