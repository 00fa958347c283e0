package correction

import (
	"context"
)

// RequestFilter narrows request listings. A nil field means "any".
type RequestFilter struct {
	EmployeeID *string
	Status     *RequestStatus
}

// RequestRepository defines data access for correction requests.
type RequestRepository interface {
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)

	GetByID(ctx context.Context, id string) (CorrectionRequest, error)

	// GetByIDForUpdate locks the request row; must run in a transaction.
	// The approval workflow uses it so two concurrent approvals serialize
	// and the loser sees the already-approved status.
	GetByIDForUpdate(ctx context.Context, id string) (CorrectionRequest, error)

	// HasPendingForDay reports whether a pending request exists for the
	// day. Called with the day row locked, inside the filing transaction,
	// to close the check-then-insert race.
	HasPendingForDay(ctx context.Context, dayID string) (bool, error)

	// List returns requests matching the filter, newest first.
	List(ctx context.Context, filter RequestFilter) ([]CorrectionRequest, error)

	MarkApproved(ctx context.Context, id string) error
}

// ProposedBreakRepository defines data access for a request's break pairs.
type ProposedBreakRepository interface {
	CreateBatch(ctx context.Context, requestID string, breaks []ProposedBreakInterval) ([]ProposedBreakInterval, error)

	ListByRequest(ctx context.Context, requestID string) ([]ProposedBreakInterval, error)
}
