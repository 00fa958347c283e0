package attendance

import (
	"time"
)

// Status is the display state of an employee's day. It is never stored;
// it is always derived from the punch facts via DeriveStatus so it cannot
// drift from the underlying records.
type Status string

const (
	StatusBeforeWork Status = "before_work"
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusFinished   Status = "finished"
)

// AttendanceDay is the base attendance record, one per (employee, date).
// Created on first clock-in, or implicitly (with null punches) when a
// correction is filed for a day that was never punched.
type AttendanceDay struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BreakInterval belongs to one AttendanceDay. End is nil while the break
// is still running; at most one interval per day may be open.
type BreakInterval struct {
	ID        string
	DayID     string
	Start     time.Time
	End       *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveStatus computes the display status from a snapshot of the day and
// its break intervals:
//
//  1. no day record            -> before_work
//  2. clock-out set            -> finished
//  3. an open break exists     -> on_break
//  4. otherwise                -> working
func DeriveStatus(day *AttendanceDay, breaks []BreakInterval) Status {
	if day == nil {
		return StatusBeforeWork
	}
	if day.ClockOut != nil {
		return StatusFinished
	}
	if OpenBreak(breaks) != nil {
		return StatusOnBreak
	}
	return StatusWorking
}

// OpenBreak returns the interval with no end time, or nil.
func OpenBreak(breaks []BreakInterval) *BreakInterval {
	for i := range breaks {
		if breaks[i].End == nil {
			return &breaks[i]
		}
	}
	return nil
}
