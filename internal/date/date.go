// Package date provides a calendar Date used for day-granular reporting
// such as "completed today" and export file names.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const format = "2006-01-02"

// Date is a calendar day. The embedded time is midnight UTC.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse parses a YYYY-MM-DD string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// Midday returns noon of d in loc. Used as a reference instant when
// asking "what happened on d".
func (d Date) Midday(loc *time.Location) time.Time {
	const noon = 12
	return time.Date(d.Year(), d.Month(), d.Day(), noon, 0, 0, 0, loc)
}

// Contains reports whether the instant t, viewed in loc, falls on d.
func (d Date) Contains(t time.Time, loc *time.Location) bool {
	return Of(t.In(loc)).Equal(d.Time)
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
