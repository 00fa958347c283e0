package correction

import "errors"

// Correction domain errors
var (
	// ErrDuplicatePendingRequest rejects a second correction filed while
	// one is still pending for the same day.
	ErrDuplicatePendingRequest = errors.New("a correction request is already pending for this day")

	// ErrStaleRequest is returned when approval targets a request that is
	// no longer pending (approved concurrently) or does not exist. Nothing
	// is applied in that case.
	ErrStaleRequest = errors.New("correction request is no longer pending")

	ErrRequestNotFound = errors.New("correction request not found")
)
