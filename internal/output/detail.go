package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

const detailWrap = 80

// TaskDetail renders a single task with full detail as terminal markdown.
// parent is nil for top-level tasks.
func TaskDetail(w io.Writer, t, parent *task.Task) {
	fmt.Fprintln(w, RenderMarkdown(TaskMarkdown(t, parent), detailWrap))
}

// TaskMarkdown builds the markdown document describing t.
func TaskMarkdown(t, parent *task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Task #%d\n\n%s\n\n", t.ID, t.Text)

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | %s |\n", t.Status.Label())
	fmt.Fprintf(&b, "| Created | %s |\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "| Completed | %s |\n", t.CompletedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "| Lead time | %s |\n", FormatDuration(t.CompletedAt.Sub(t.CreatedAt)))
	}
	if parent != nil {
		fmt.Fprintf(&b, "| Parent | #%d %s |\n", parent.ID, escapeCell(parent.Text))
	}

	if len(t.Subtasks) > 0 {
		done, total := t.SubtaskProgress()
		fmt.Fprintf(&b, "\n## Subtasks (%d/%d)\n\n", done, total)
		for _, st := range t.Subtasks {
			mark := " "
			if st.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] #%d %s _(%s)_\n", mark, st.ID, st.Text, st.Status.Label())
		}
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal, falling back to the raw
// text when rendering fails.
func RenderMarkdown(md string, width int) string {
	style := "dark"
	if colorDisabled || !lipgloss.HasDarkBackground() {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
