// Package activity keeps an append-only JSONL log of task mutations in
// the board directory.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FileName is the log file inside the board directory.
	FileName      = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int       `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Append appends an entry to the log in dir.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func Append(dir string, entry Entry) error {
	path := filepath.Join(dir, FileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted board dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncation is best-effort.
	_ = truncateIfNeeded(path, maxLogEntries)

	return nil
}

// truncateIfNeeded rewrites the log keeping only the newest limit lines.
func truncateIfNeeded(path string, limit int) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= limit {
		return nil
	}

	lines = lines[len(lines)-limit:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// Read returns the newest limit entries from the log in dir, oldest
// first. limit <= 0 returns every entry. Malformed lines are skipped.
func Read(dir string, limit int) ([]Entry, error) {
	lines, err := readLines(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Log records store mutations into a board directory.
type Log struct {
	dir string
	now func() time.Time
}

// New returns a Log writing to dir.
func New(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

// Record appends an entry. Errors are discarded because logging should
// never fail a mutation.
func (l *Log) Record(action string, taskID int, detail string) {
	_ = Append(l.dir, Entry{
		Timestamp: l.now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	})
}
