package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "12:30", "23:59"}
	invalid := []string{"", "9am", "24:00", "12:60", "12:3a", "12:30:00"}
	for _, s := range valid {
		if _, ok := ParseClockTime(s); !ok {
			t.Errorf("ParseClockTime(%q) not ok, want ok", s)
		}
	}
	for _, s := range invalid {
		if _, ok := ParseClockTime(s); ok {
			t.Errorf("ParseClockTime(%q) ok, want not ok", s)
		}
	}
}

func TestAtDate(t *testing.T) {
	clock, _ := ParseClockTime("09:30")
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got := AtDate(clock, date, time.UTC)
	want := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtDate = %v, want %v", got, want)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "clock_in", Message: "clock-in time is required"},
		{Field: "note", Message: "note is required"},
		{Field: "note", Message: "note must be 255 characters or less"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap returned %d keys, want 2", len(m))
	}
	if len(m["note"]) != 2 {
		t.Errorf("note has %d reasons, want 2", len(m["note"]))
	}
	if m["clock_in"][0] != "clock-in time is required" {
		t.Errorf("unexpected clock_in message: %q", m["clock_in"][0])
	}
}
