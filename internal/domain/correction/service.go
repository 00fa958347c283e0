package correction

import (
	"context"
	"time"
)

// CorrectionService defines business logic for the correction workflow.
type CorrectionService interface {
	// File validates and stores a correction request for the employee's
	// day, creating the day record first when the day was never punched.
	// Fails with ErrDuplicatePendingRequest while another request is
	// pending for the same day.
	File(ctx context.Context, employeeID string, date time.Time, req CreateCorrectionRequest) (RequestResponse, error)

	// Approve atomically applies a pending request onto the base records:
	// overwrite the day's punches and note, replace its break intervals
	// with the proposed ones, mark the request approved. A request that
	// is no longer pending yields ErrStaleRequest and applies nothing.
	Approve(ctx context.Context, requestID string) (RequestResponse, error)

	// Get returns one request with its proposed breaks.
	Get(ctx context.Context, requestID string) (RequestResponse, error)

	// List returns requests matching the filter, newest first.
	List(ctx context.Context, filter RequestFilter) ([]RequestResponse, error)
}
