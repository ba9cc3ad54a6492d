package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

const (
	mainChrome  = 3 // title line + blank line + status bar
	errorChrome = 1 // extra line when an error or notice is displayed
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).Padding(0, 1)

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = cardStyle.BorderForeground(lipgloss.Color("226"))

	selectedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusColors = map[task.Status]lipgloss.Color{
		task.StatusNotStarted: "252",
		task.StatusInProgress: "33",
		task.StatusCompleted:  "34",
	}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

func (b *Board) viewMain() string {
	title := titleStyle.Render(b.cfg.Board.Name)
	title += dimStyle.Render(fmt.Sprintf("  %s view, filter: %s", b.ctrl.Mode, b.ctrl.Filter))

	var body string
	if b.ctrl.Mode == view.ModeBoard {
		body = b.viewColumns()
	} else {
		body = b.viewList()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", b.renderStatusBar())
}

func (b *Board) chromeHeight() int {
	h := mainChrome
	if b.err != nil || b.notice != "" {
		h += errorChrome
	}
	return h
}

func (b *Board) viewList() string {
	if len(b.rows) == 0 {
		return dimStyle.Render("  No tasks. Press a to add one.")
	}

	budget := max(b.height-b.chromeHeight(), 1)
	start := 0
	if b.listRow >= budget {
		start = b.listRow - budget + 1
	}
	end := min(start+budget, len(b.rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, b.renderRow(b.rows[i], i == b.listRow))
	}
	return strings.Join(lines, "\n")
}

func (b *Board) renderRow(r row, selected bool) string {
	t := r.task
	check := "[ ]"
	switch t.Status {
	case task.StatusCompleted:
		check = "[x]"
	case task.StatusInProgress:
		check = "[~]"
	}

	indent := "  "
	if r.subtask {
		indent = "      "
	}
	cursor := " "
	if selected {
		cursor = ">"
	}

	prefix := fmt.Sprintf("%s%s%s #%d ", cursor, indent, check, t.ID)
	suffix := ""
	if done, total := t.SubtaskProgress(); total > 0 {
		suffix = fmt.Sprintf(" (%d/%d)", done, total)
	}
	text := truncate(t.Text, max(b.width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)) //nolint:mnd // minimum text room

	switch {
	case selected:
		return selectedRowStyle.Render(prefix+text) + dimStyle.Render(suffix)
	case t.Completed:
		return dimStyle.Render(prefix) + completedStyle.Render(text) + dimStyle.Render(suffix)
	default:
		return prefix + text + dimStyle.Render(suffix)
	}
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	const maxColWidth = 60
	return min(b.width/len(b.columns), maxColWidth)
}

func (b *Board) viewColumns() string {
	w := b.columnWidth()
	rendered := make([]string, len(b.columns))
	for i, col := range b.columns {
		rendered[i] = b.renderColumn(i, col, w)
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	// Clamp from the bottom so headers stay visible on small terminals.
	if target := b.height - b.chromeHeight(); target > 0 {
		if lines := strings.Split(boardView, "\n"); len(lines) > target {
			boardView = strings.Join(lines[:target], "\n")
		}
	}
	return boardView
}

func (b *Board) renderColumn(colIdx int, col view.Column, width int) string {
	const headerPad = 2
	headerText := truncate(fmt.Sprintf("%s (%d)", col.Status.Label(), len(col.Tasks)), width-headerPad)

	style := columnHeaderStyle.Foreground(statusColors[col.Status])
	if colIdx == b.activeCol {
		style = activeColumnHeaderStyle
	}
	parts := []string{style.Width(width).Render(headerText)}

	if len(col.Tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	}

	// Keep the active card in view.
	start := 0
	if colIdx == b.activeCol {
		perCard := b.cfg.TitleLines() + 3 //nolint:mnd // progress line + borders
		if fit := max((b.height-b.chromeHeight()-1)/perCard, 1); b.activeRow >= fit {
			start = b.activeRow - fit + 1
		}
	}
	if start > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < len(col.Tasks); i++ {
		active := colIdx == b.activeCol && i == b.activeRow
		parts = append(parts, b.renderCard(col.Tasks[i], active, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := max(width-cardChrome, 1)

	lines := wrapText(fmt.Sprintf("#%d %s", t.ID, t.Text), cardWidth, b.cfg.TitleLines())
	if done, total := t.SubtaskProgress(); total > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d/%d subtasks", done, total)))
	}

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n")) //nolint:mnd // border width
}

func (b *Board) renderStatusBar() string {
	c := b.store.Stats(b.now()).Counts
	status := fmt.Sprintf(" %d tasks | %d pending | %d completed | tab:view f:filter a:add s:sub space:toggle H/L:move d:del c:clear e:export q:quit",
		c.All, c.Pending, c.Completed)
	status = statusBarStyle.Render(truncate(status, b.width))

	switch {
	case b.err != nil:
		return errorStyle.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + status
	case b.notice != "":
		return noticeStyle.Render(truncate(b.notice, b.width)) + "\n" + status
	}
	return status
}

func (b *Board) viewInput() string {
	header := "New task"
	if b.inputParent > 0 {
		header = fmt.Sprintf("New subtask for #%d", b.inputParent)
	}
	content := lipgloss.NewStyle().Bold(true).Render(header) + "\n\n" +
		b.input.View() + "\n\n" +
		dimStyle.Render("enter:save  esc:cancel")
	return dialogStyle.Render(content)
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", b.deleteID, b.deleteText) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (b *Board) viewClearAllConfirm() string {
	content := errorStyle.Render("Delete ALL tasks?") + "\n\n" +
		fmt.Sprintf("  %d tasks will be removed from the board.", b.clearAllCount) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

// wrapText word-wraps s to width and keeps at most maxLines lines,
// truncating the last kept line when text is cut.
func wrapText(s string, width, maxLines int) []string {
	lines := strings.Split(wordwrap.String(s, width), "\n")
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	if maxLines < 1 || len(lines) <= maxLines {
		return lines
	}
	kept := lines[:maxLines]
	kept[maxLines-1] = truncate(kept[maxLines-1]+" "+lines[maxLines], width)
	return kept
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
