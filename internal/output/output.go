// Package output renders tasks, board columns, summaries and activity as
// styled tables, compact lines, JSON, or glamour-rendered markdown.
package output

import (
	"os"
	"strings"
)

// Format selects how command results are written.
type Format int

const (
	// FormatTable is the default human-readable layout.
	FormatTable Format = iota
	// FormatJSON writes indented JSON.
	FormatJSON
	// FormatCompact writes one line per record.
	FormatCompact
)

// EnvOutput names the environment variable that selects a default format.
const EnvOutput = "TASKTRACK_OUTPUT"

var formatNames = map[string]Format{
	"table":   FormatTable,
	"json":    FormatJSON,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// ParseFormat resolves a format name as accepted by TASKTRACK_OUTPUT.
func ParseFormat(s string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// String returns the canonical name of f.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCompact:
		return "compact"
	}
	return "table"
}

// Detect picks the format from the output flags, then TASKTRACK_OUTPUT.
// Unknown environment values fall back to table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvOutput)); ok {
		return f
	}
	return FormatTable
}
