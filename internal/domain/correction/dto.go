package correction

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// CORRECTION DTOs
// ========================================

// BreakPairInput is one slot of the correction form's break list. Both
// sides empty means "no break at this slot" and is skipped silently.
type BreakPairInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateCorrectionRequest carries a proposed full-day rewrite. Times are
// "HH:MM" strings; the date is taken from the URL, not the body.
type CreateCorrectionRequest struct {
	ClockIn        string           `json:"clock_in"`
	ClockOut       string           `json:"clock_out"`
	BreakIntervals []BreakPairInput `json:"break_intervals"`
	Note           string           `json:"note"`
}

const noteMaxLength = 255

// Validate accumulates every failure instead of stopping at the first,
// so the caller can surface all problems at once. Cross-field rules are
// only checked once the fields involved parsed.
func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	clockIn, clockInOK := validator.ParseClockTime(r.ClockIn)
	if validator.IsEmpty(r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock-in time is required",
		})
	} else if !clockInOK {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock-in time must be in HH:MM format",
		})
	}

	clockOut, clockOutOK := validator.ParseClockTime(r.ClockOut)
	if validator.IsEmpty(r.ClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock-out time is required",
		})
	} else if !clockOutOK {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock-out time must be in HH:MM format",
		})
	} else if clockInOK && !clockOut.After(clockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock-out time must be after clock-in time",
		})
	}

	for i, pair := range r.BreakIntervals {
		startEmpty := validator.IsEmpty(pair.Start)
		endEmpty := validator.IsEmpty(pair.End)
		if startEmpty && endEmpty {
			continue
		}

		startField := fmt.Sprintf("break_intervals[%d].start", i)
		endField := fmt.Sprintf("break_intervals[%d].end", i)

		start, startOK := validator.ParseClockTime(pair.Start)
		if startEmpty {
			startOK = false
			errs = append(errs, validator.ValidationError{
				Field:   startField,
				Message: "break start time is required when break end time is set",
			})
		} else if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   startField,
				Message: "break start time must be in HH:MM format",
			})
		} else {
			if clockInOK && start.Before(clockIn) {
				errs = append(errs, validator.ValidationError{
					Field:   startField,
					Message: "break start time must not be before clock-in time",
				})
			}
			if clockOutOK && !start.Before(clockOut) {
				errs = append(errs, validator.ValidationError{
					Field:   startField,
					Message: "break start time must be before clock-out time",
				})
			}
		}

		end, endOK := validator.ParseClockTime(pair.End)
		if endEmpty {
			errs = append(errs, validator.ValidationError{
				Field:   endField,
				Message: "break end time is required when break start time is set",
			})
		} else if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   endField,
				Message: "break end time must be in HH:MM format",
			})
		} else {
			if startOK && !end.After(start) {
				errs = append(errs, validator.ValidationError{
					Field:   endField,
					Message: "break end time must be after break start time",
				})
			}
			if clockOutOK && end.After(clockOut) {
				errs = append(errs, validator.ValidationError{
					Field:   endField,
					Message: "break end time must not be after clock-out time",
				})
			}
		}
	}

	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	} else if utf8.RuneCountInString(r.Note) > noteMaxLength {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must be 255 characters or less",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// FilledBreaks returns the pairs the employee actually used, skipping the
// all-empty slots. Only meaningful after Validate passed.
func (r *CreateCorrectionRequest) FilledBreaks() []BreakPairInput {
	filled := make([]BreakPairInput, 0, len(r.BreakIntervals))
	for _, pair := range r.BreakIntervals {
		if validator.IsEmpty(pair.Start) && validator.IsEmpty(pair.End) {
			continue
		}
		filled = append(filled, pair)
	}
	return filled
}

type ProposedBreakResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type RequestResponse struct {
	ID         string                  `json:"id"`
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	ClockIn    string                  `json:"clock_in"`
	ClockOut   string                  `json:"clock_out"`
	Note       string                  `json:"note"`
	Status     RequestStatus           `json:"status"`
	Breaks     []ProposedBreakResponse `json:"breaks,omitempty"`
	CreatedAt  string                  `json:"created_at"`
}

// FormatRequest maps an entity to its response shape. Breaks are passed
// separately because list views do not load them.
func FormatRequest(req CorrectionRequest, breaks []ProposedBreakInterval, loc *time.Location) RequestResponse {
	resp := RequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Date:       req.ClockIn.In(loc).Format("2006-01-02"),
		ClockIn:    req.ClockIn.In(loc).Format("15:04"),
		ClockOut:   req.ClockOut.In(loc).Format("15:04"),
		Note:       req.Note,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt.In(loc).Format("2006-01-02 15:04:05"),
	}
	for _, b := range breaks {
		resp.Breaks = append(resp.Breaks, ProposedBreakResponse{
			Start: b.Start.In(loc).Format("15:04"),
			End:   b.End.In(loc).Format("15:04"),
		})
	}
	return resp
}
