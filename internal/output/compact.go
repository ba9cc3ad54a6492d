package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/tasktrack/internal/activity"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
	"github.com/twiced-technology-gmbh/tasktrack/internal/view"
)

// TaskCompact renders tasks in one-line-per-record compact format, with
// subtasks indented under their parent.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
		for _, st := range t.Subtasks {
			fmt.Fprintln(w, "  "+formatTaskLine(st))
		}
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))

	ts := "  created:" + t.CreatedAt.Format("2006-01-02")
	if t.CompletedAt != nil {
		ts += " completed:" + t.CompletedAt.Format("2006-01-02")
	}
	if t.ParentID != nil {
		ts += " parent:#" + strconv.Itoa(*t.ParentID)
	}
	fmt.Fprintln(w, ts)

	for _, st := range t.Subtasks {
		fmt.Fprintln(w, "  "+formatTaskLine(st))
	}
}

// BoardCompact renders board columns as one line per task, prefixed by
// the column status.
func BoardCompact(w io.Writer, cols []view.Column) {
	for _, col := range cols {
		fmt.Fprintf(w, "%s (%d)\n", col.Status, len(col.Tasks))
		for _, t := range col.Tasks {
			fmt.Fprintln(w, "  "+formatTaskLine(t))
		}
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s view.Overview) {
	st := s.Stats
	fmt.Fprintf(w, "%s (%d tasks, %d%% complete)\n", s.BoardName, st.Total, st.CompletionRate)

	parts := make([]string, 0, len(s.Statuses))
	for _, ss := range s.Statuses {
		parts = append(parts, string(ss.Status)+"="+strconv.Itoa(ss.Count))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, " "))
	fmt.Fprintf(w, "  today: created=%d completed=%d\n", st.CreatedToday, st.CompletedToday)
	fmt.Fprintf(w, "  all incl. subtasks: %d (pending=%d completed=%d)\n",
		st.Counts.All, st.Counts.Pending, st.Counts.Completed)
}

// ActivityCompact renders activity entries one per line.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Format("2006-01-02T15:04:05") + " " + e.Action
		if e.TaskID > 0 {
			line += " #" + strconv.Itoa(e.TaskID)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := "#" + strconv.Itoa(t.ID) + " [" + string(t.Status) + "] " + t.Text
	if done, total := t.SubtaskProgress(); total > 0 {
		line += " (" + strconv.Itoa(done) + "/" + strconv.Itoa(total) + ")"
	}
	return line
}
