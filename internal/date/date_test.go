package date

import (
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2026-03-09")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := d.String(); got != "2026-03-09" {
		t.Fatalf("String = %q", got)
	}
	if _, err := Parse("03/09/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestContains(t *testing.T) {
	d := New(2026, time.March, 9)
	inDay := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.March, 10, 0, 0, 1, 0, time.UTC)

	if !d.Contains(inDay, time.UTC) {
		t.Fatal("expected instant late on the day to be contained")
	}
	if d.Contains(nextDay, time.UTC) {
		t.Fatal("expected next-day instant to be excluded")
	}

	// 01:00 UTC on the 10th is still the 9th in UTC-5.
	est := time.FixedZone("EST", -5*60*60)
	early := time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC)
	if !d.Contains(early, est) {
		t.Fatal("expected location to shift the calendar day")
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := New(2026, time.January, 2).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"2026-01-02"` {
		t.Fatalf("MarshalJSON = %s", data)
	}
}

func TestMidday(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	d := New(2026, time.March, 9)
	got := d.Midday(est)
	if got.Hour() != 12 || got.Location() != est || !d.Contains(got, est) {
		t.Fatalf("Midday = %v", got)
	}
	if !d.Contains(got, time.UTC) {
		t.Fatal("noon EST is still the 9th in UTC")
	}
}
