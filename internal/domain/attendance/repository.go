package attendance

import (
	"context"
	"time"
)

// DayRepository defines data access for base attendance records.
type DayRepository interface {
	// Create creates a new attendance day record
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// GetByEmployeeAndDate returns the day record, or nil when the
	// employee never punched (and no correction created one).
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)

	// GetByEmployeeAndDateForUpdate is the same read with a row lock; it
	// must be called inside a transaction. Mutating operations use it so
	// two concurrent punches (or filings) serialize on the day row.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)

	// SetClockOut stamps the clock-out time on an open day.
	SetClockOut(ctx context.Context, id string, clockOut time.Time) error

	// Overwrite replaces clock-in, clock-out and note wholesale. Used by
	// the correction approval workflow.
	Overwrite(ctx context.Context, id string, clockIn, clockOut time.Time, note *string) error

	// ListByEmployeeMonth returns the employee's day records for one
	// calendar month, ordered by date.
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceDay, error)

	// ListByDate returns every employee's day record for one date.
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceDay, error)
}

// BreakRepository defines data access for break intervals.
type BreakRepository interface {
	Create(ctx context.Context, b BreakInterval) (BreakInterval, error)

	// Close sets the end time of an open interval.
	Close(ctx context.Context, id string, end time.Time) error

	ListByDay(ctx context.Context, dayID string) ([]BreakInterval, error)

	// ListByDayIDs fetches intervals for many days at once, keyed by day ID.
	ListByDayIDs(ctx context.Context, dayIDs []string) (map[string][]BreakInterval, error)

	// DeleteByDay removes every interval of a day. The approval workflow
	// calls this before re-creating intervals from the approved proposal.
	DeleteByDay(ctx context.Context, dayID string) error
}
