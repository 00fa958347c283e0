package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations.
// The target employee is always an explicit parameter; services never read
// ambient identity (the transport layer resolved it already).
type AttendanceService interface {
	// ClockIn starts the employee's day. Legal only from before_work.
	ClockIn(ctx context.Context, employeeID string) (TodayResponse, error)

	// StartBreak opens a break interval. Legal only from working.
	StartBreak(ctx context.Context, employeeID string) (TodayResponse, error)

	// EndBreak closes the open break interval. Legal only from on_break.
	EndBreak(ctx context.Context, employeeID string) (TodayResponse, error)

	// ClockOut ends the day, force-closing an open break first. Legal
	// from working or on_break; finished is terminal for the date.
	ClockOut(ctx context.Context, employeeID string) (TodayResponse, error)

	// GetToday returns the derived status and punches for the current day.
	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)

	// GetDay returns one day in detail, including break intervals and
	// whether a correction request is pending for it.
	GetDay(ctx context.Context, employeeID string, date time.Time) (DayDetailResponse, error)

	// ListMonth returns one row per calendar day of the month, empty rows
	// included, with formatted break and net work times.
	ListMonth(ctx context.Context, employeeID string, year int, month time.Month) (MonthResponse, error)

	// ListByDate returns every employee's row for one date (admin view).
	ListByDate(ctx context.Context, date time.Time) ([]DayRowResponse, error)
}
