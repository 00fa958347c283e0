package attendance

import "errors"

// Attendance domain errors
var (
	// ErrIllegalTransition is returned when a punch action is attempted
	// from a state that does not allow it (e.g. clock-in twice, end a
	// break that was never started). Recoverable; the caller decides how
	// to surface it.
	ErrIllegalTransition = errors.New("action not allowed in the current attendance state")

	ErrDayNotFound = errors.New("attendance record not found")
)
