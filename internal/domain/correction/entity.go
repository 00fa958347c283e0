package correction

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
)

// CorrectionRequest is a proposed full-day rewrite of an attendance record.
// At most one pending request may exist per day; once approved it is
// immutable history.
type CorrectionRequest struct {
	ID         string
	DayID      string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   time.Time
	Note       string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProposedBreakInterval is a break pair carried by a request. Both sides
// are always set; on approval the pairs are copied 1:1 into real break
// intervals and never touched again.
type ProposedBreakInterval struct {
	ID        string
	RequestID string
	Start     time.Time
	End       time.Time
}
