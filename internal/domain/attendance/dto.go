package attendance

import (
	"time"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// TodayResponse backs the punch screen: the derived status plus today's
// punch times.
type TodayResponse struct {
	Date     string  `json:"date"`
	Status   Status  `json:"status"`
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
}

type BreakResponse struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// DayRowResponse is one line of a list view. BreakTime and WorkTime are
// pre-formatted as "H:MM"; a zero or unknown value renders blank.
type DayRowResponse struct {
	EmployeeID string  `json:"employee_id,omitempty"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in"`
	ClockOut   *string `json:"clock_out"`
	BreakTime  string  `json:"break_time"`
	WorkTime   string  `json:"work_time"`
}

type MonthResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []DayRowResponse `json:"days"`
}

// DayDetailResponse backs the detail/correction screen.
type DayDetailResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Date              string          `json:"date"`
	ClockIn           *string         `json:"clock_in"`
	ClockOut          *string         `json:"clock_out"`
	Note              *string         `json:"note"`
	Breaks            []BreakResponse `json:"breaks"`
	BreakTime         string          `json:"break_time"`
	WorkTime          string          `json:"work_time"`
	HasPendingRequest bool            `json:"has_pending_request"`
}

// FormatClock renders a punch timestamp as "HH:MM" in loc, nil-safe.
func FormatClock(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format("15:04")
	return &s
}
