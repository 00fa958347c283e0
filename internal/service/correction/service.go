package correction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

type CorrectionServiceImpl struct {
	txm          database.TxManager
	dayRepo      attendance.DayRepository
	breakRepo    attendance.BreakRepository
	requestRepo  correction.RequestRepository
	proposedRepo correction.ProposedBreakRepository
	loc          *time.Location
}

func NewCorrectionService(
	txm database.TxManager,
	dayRepo attendance.DayRepository,
	breakRepo attendance.BreakRepository,
	requestRepo correction.RequestRepository,
	proposedRepo correction.ProposedBreakRepository,
	loc *time.Location,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		txm:          txm,
		dayRepo:      dayRepo,
		breakRepo:    breakRepo,
		requestRepo:  requestRepo,
		proposedRepo: proposedRepo,
		loc:          loc,
	}
}

// File implements correction.CorrectionService. Filing never touches the
// day's punch facts; it records the proposed values for an admin to approve.
// The day row is locked for the duration so two concurrent filings for the
// same day cannot both pass the pending-uniqueness check.
func (s *CorrectionServiceImpl) File(ctx context.Context, employeeID string, date time.Time, req correction.CreateCorrectionRequest) (correction.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.RequestResponse{}, err
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	clockIn, _ := validator.ParseClockTime(req.ClockIn)
	clockOut, _ := validator.ParseClockTime(req.ClockOut)

	var (
		created   correction.CorrectionRequest
		proposals []correction.ProposedBreakInterval
	)
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		day, err := s.dayRepo.GetByEmployeeAndDateForUpdate(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("failed to get attendance day: %w", err)
		}
		if day == nil {
			// A correction may target a day the employee never punched;
			// materialize the row so the request has something to attach to.
			newDay, err := s.dayRepo.Create(ctx, attendance.AttendanceDay{
				EmployeeID: employeeID,
				Date:       date,
			})
			if err != nil {
				return fmt.Errorf("failed to create attendance day: %w", err)
			}
			day = &newDay
		}

		hasPending, err := s.requestRepo.HasPendingForDay(ctx, day.ID)
		if err != nil {
			return fmt.Errorf("failed to check pending correction request: %w", err)
		}
		if hasPending {
			return correction.ErrDuplicatePendingRequest
		}

		created, err = s.requestRepo.Create(ctx, correction.CorrectionRequest{
			DayID:      day.ID,
			EmployeeID: employeeID,
			ClockIn:    validator.AtDate(clockIn, date, s.loc),
			ClockOut:   validator.AtDate(clockOut, date, s.loc),
			Note:       req.Note,
			Status:     correction.RequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create correction request: %w", err)
		}

		proposed := make([]correction.ProposedBreakInterval, 0, len(req.BreakIntervals))
		for _, pair := range req.FilledBreaks() {
			start, _ := validator.ParseClockTime(pair.Start)
			end, _ := validator.ParseClockTime(pair.End)
			proposed = append(proposed, correction.ProposedBreakInterval{
				Start: validator.AtDate(start, date, s.loc),
				End:   validator.AtDate(end, date, s.loc),
			})
		}
		proposals, err = s.proposedRepo.CreateBatch(ctx, created.ID, proposed)
		if err != nil {
			return fmt.Errorf("failed to create proposed break intervals: %w", err)
		}
		return nil
	})
	if err != nil {
		return correction.RequestResponse{}, err
	}

	return correction.FormatRequest(created, proposals, s.loc), nil
}

// Approve implements correction.CorrectionService. The whole apply runs in
// one transaction with the request row locked: overwrite the day's punches,
// replace its breaks with the proposed ones, then flip the request to
// approved. A request that is missing or no longer pending is stale.
func (s *CorrectionServiceImpl) Approve(ctx context.Context, requestID string) (correction.RequestResponse, error) {
	var (
		approved  correction.CorrectionRequest
		proposals []correction.ProposedBreakInterval
	)
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		req, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			// A vanished request is indistinguishable from an already
			// handled one as far as the caller is concerned.
			if errors.Is(err, correction.ErrRequestNotFound) {
				return correction.ErrStaleRequest
			}
			return fmt.Errorf("failed to get correction request: %w", err)
		}
		if req.Status != correction.RequestStatusPending {
			return correction.ErrStaleRequest
		}

		if err := s.dayRepo.Overwrite(ctx, req.DayID, req.ClockIn, req.ClockOut, &req.Note); err != nil {
			return fmt.Errorf("failed to overwrite attendance day: %w", err)
		}

		proposals, err = s.proposedRepo.ListByRequest(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to list proposed break intervals: %w", err)
		}
		if err := s.breakRepo.DeleteByDay(ctx, req.DayID); err != nil {
			return fmt.Errorf("failed to delete break intervals: %w", err)
		}
		for _, p := range proposals {
			end := p.End
			if _, err := s.breakRepo.Create(ctx, attendance.BreakInterval{
				DayID: req.DayID,
				Start: p.Start,
				End:   &end,
			}); err != nil {
				return fmt.Errorf("failed to create break interval: %w", err)
			}
		}

		if err := s.requestRepo.MarkApproved(ctx, req.ID); err != nil {
			return fmt.Errorf("failed to mark correction request approved: %w", err)
		}

		approved = req
		approved.Status = correction.RequestStatusApproved
		return nil
	})
	if err != nil {
		return correction.RequestResponse{}, err
	}

	return correction.FormatRequest(approved, proposals, s.loc), nil
}

// Get implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Get(ctx context.Context, requestID string) (correction.RequestResponse, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, correction.ErrRequestNotFound) {
			return correction.RequestResponse{}, err
		}
		return correction.RequestResponse{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	proposals, err := s.proposedRepo.ListByRequest(ctx, req.ID)
	if err != nil {
		return correction.RequestResponse{}, fmt.Errorf("failed to list proposed break intervals: %w", err)
	}

	return correction.FormatRequest(req, proposals, s.loc), nil
}

// List implements correction.CorrectionService.
func (s *CorrectionServiceImpl) List(ctx context.Context, filter correction.RequestFilter) ([]correction.RequestResponse, error) {
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}

	responses := make([]correction.RequestResponse, 0, len(requests))
	for _, req := range requests {
		proposals, err := s.proposedRepo.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list proposed break intervals: %w", err)
		}
		responses = append(responses, correction.FormatRequest(req, proposals, s.loc))
	}

	return responses, nil
}
