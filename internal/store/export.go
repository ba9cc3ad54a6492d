package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
)

// ExportVersion identifies the backup document layout.
const ExportVersion = "1.0"

type exportDocument struct {
	Tasks      []*wireTask `json:"tasks"`
	ExportDate string      `json:"exportDate"`
	Version    string      `json:"version"`
}

// Export writes a pretty-printed snapshot of every task to w.
func (s *Store) Export(w io.Writer, now time.Time) error {
	data, err := json.MarshalIndent(exportDocument{
		Tasks:      toWire(s.tasks),
		ExportDate: formatTime(now),
		Version:    ExportVersion,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ExportFileName returns the default backup file name for the UTC day of now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("tasks_backup_%s.json", date.Of(now.UTC()))
}
