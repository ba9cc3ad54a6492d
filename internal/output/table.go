package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/tasktrack/internal/activity"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle   = lipgloss.NewStyle().Bold(true)

	// Status colors aligned with TUI column-header palette.
	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusNotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		task.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	colorDisabled bool
)

// DisableColor strips all styling from table output.
func DisableColor() {
	colorDisabled = true
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	boldStyle = lipgloss.NewStyle()
	statusStyles = map[task.Status]lipgloss.Style{}
	columnStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
}

// TaskTable renders tasks as a formatted table, with subtasks on indented
// rows below their parent.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, statusW, textW, progW := 4, 8, 6, 10
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		statusW = max(statusW, len(t.Status)+pad)
		textW = max(textW, min(lipgloss.Width(t.Text)+pad, 50)) //nolint:mnd // max text column width
		for _, st := range t.Subtasks {
			idW = max(idW, len(strconv.Itoa(st.ID))+pad)
			textW = max(textW, min(lipgloss.Width(st.Text)+4+pad, 50)) //nolint:mnd // max text column width
		}
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", textW, "TEXT", progW, "SUBTASKS", "CREATED")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		progress := dimStyle.Render("--")
		if done, total := t.SubtaskProgress(); total > 0 {
			progress = strconv.Itoa(done) + "/" + strconv.Itoa(total)
		}
		row := fmt.Sprintf("%-*d %s %s %s %s",
			idW, t.ID,
			padRight(styledStatus(t.Status), statusW),
			padRight(truncate(t.Text, textW-pad), textW),
			padRight(progress, progW),
			t.CreatedAt.Local().Format("2006-01-02"))
		fmt.Fprintln(w, strings.TrimRight(row, " "))

		for _, st := range t.Subtasks {
			row := fmt.Sprintf("%-*d %s %s",
				idW, st.ID,
				padRight(styledStatus(st.Status), statusW),
				dimStyle.Render("└─ ")+truncate(st.Text, textW-pad-3))
			fmt.Fprintln(w, strings.TrimRight(row, " "))
		}
	}
}

// BoardTable renders the three status columns side by side.
func BoardTable(w io.Writer, cols []view.Column, width int) {
	const minColW, gaps = 18, 6
	colW := max(minColW, (width-gaps)/max(len(cols), 1))
	inner := colW - 4 //nolint:mnd // border + padding

	rendered := make([]string, 0, len(cols))
	for _, col := range cols {
		lines := []string{
			boldStyle.Render(styledStatus(col.Status, col.Status.Label())) +
				dimStyle.Render(fmt.Sprintf(" (%d)", len(col.Tasks))),
		}
		if len(col.Tasks) == 0 {
			lines = append(lines, dimStyle.Render("--"))
		}
		for _, t := range col.Tasks {
			card := "#" + strconv.Itoa(t.ID) + " " + t.Text
			if done, total := t.SubtaskProgress(); total > 0 {
				card += dimStyle.Render(fmt.Sprintf(" [%d/%d]", done, total))
			}
			lines = append(lines, truncate(card, inner))
		}
		rendered = append(rendered, columnStyle.Width(colW-2).Render(strings.Join(lines, "\n")))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

// OverviewTable renders a board summary as a formatted dashboard.
func OverviewTable(w io.Writer, s view.Overview) {
	st := s.Stats
	fmt.Fprintln(w, boldStyle.Render(s.BoardName))
	fmt.Fprintf(w, "Total: %d tasks, %d completed, %d pending (%d%% complete)\n",
		st.Total, st.Completed, st.Pending, st.CompletionRate)
	fmt.Fprintf(w, "Today (%s): %d created, %d completed\n", st.Date, st.CreatedToday, st.CompletedToday)
	fmt.Fprintf(w, "View: %s, filter %s (%d visible)\n\n", s.Mode, s.Filter, s.Visible)

	header := fmt.Sprintf("%-16s %6s %9s", "STATUS", "COUNT", "SUBTASKS")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, ss := range s.Statuses {
		const statusColW = 16
		fmt.Fprintf(w, "%s %6d %9d\n",
			padRight(styledStatus(ss.Status), statusColW), ss.Count, ss.Subtasks)
	}

	c := st.Counts
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Including subtasks: %d total, %d not started, %d in progress, %d completed\n",
		c.All, c.NotStarted, c.InProgress, c.Completed)
}

// ActivityTable renders activity entries as a table.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-19s %-16s %-6s %s", "TIME", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := dimStyle.Render("--")
		if e.TaskID > 0 {
			id = "#" + strconv.Itoa(e.TaskID)
		}
		row := fmt.Sprintf("%-19s %-16s %s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, padRight(id, 6), e.Detail) //nolint:mnd // column width
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// FormatDuration renders a duration as human-readable "Xd Yh" or "Xh Ym".
func FormatDuration(d time.Duration) string {
	const hoursPerDay = 24
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if days > 0 {
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h"
	}
	minutes := int(d.Minutes()) % 60 //nolint:mnd // 60 minutes per hour
	return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens plain text to width cells, adding an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// styledStatus renders a status (or the given label) in its status color.
func styledStatus(s task.Status, label ...string) string {
	text := string(s)
	if len(label) > 0 {
		text = label[0]
	}
	if st, ok := statusStyles[s]; ok {
		return st.Render(text)
	}
	return text
}
