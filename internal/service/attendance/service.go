package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

// AttendanceServiceImpl derives the display status from the stored punch
// facts and applies the four punch transitions. Every mutating operation
// runs in one transaction with the day row locked, so concurrent punches
// for the same employee serialize instead of double-applying.
type AttendanceServiceImpl struct {
	txm         database.TxManager
	dayRepo     attendance.DayRepository
	breakRepo   attendance.BreakRepository
	requestRepo correction.RequestRepository
	loc         *time.Location
	now         func() time.Time
}

func NewAttendanceService(
	txm database.TxManager,
	dayRepo attendance.DayRepository,
	breakRepo attendance.BreakRepository,
	requestRepo correction.RequestRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txm:         txm,
		dayRepo:     dayRepo,
		breakRepo:   breakRepo,
		requestRepo: requestRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// dateOf truncates a timestamp to its work date in the organizational
// timezone.
func (s *AttendanceServiceImpl) dateOf(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// pinDate re-anchors an already-parsed calendar date in the
// organizational timezone without shifting its components.
func (s *AttendanceServiceImpl) pinDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
}

// snapshotForUpdate loads the locked day row plus its breaks for a
// mutating operation. day is nil when the employee has no record yet.
func (s *AttendanceServiceImpl) snapshotForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, []attendance.BreakInterval, error) {
	day, err := s.dayRepo.GetByEmployeeAndDateForUpdate(ctx, employeeID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attendance day: %w", err)
	}
	if day == nil {
		return nil, nil, nil
	}
	breaks, err := s.breakRepo.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list break intervals: %w", err)
	}
	return day, breaks, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	now := s.now()
	date := s.dateOf(now)

	var created attendance.AttendanceDay
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		day, breaks, err := s.snapshotForUpdate(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if attendance.DeriveStatus(day, breaks) != attendance.StatusBeforeWork {
			return attendance.ErrIllegalTransition
		}

		created, err = s.dayRepo.Create(ctx, attendance.AttendanceDay{
			EmployeeID: employeeID,
			Date:       date,
			ClockIn:    &now,
		})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return s.todayResponse(created, attendance.StatusWorking), nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	now := s.now()
	date := s.dateOf(now)

	var day *attendance.AttendanceDay
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var breaks []attendance.BreakInterval
		var err error
		day, breaks, err = s.snapshotForUpdate(ctx, employeeID, date)
		if err != nil {
			return err
		}
		// A day materialized by a correction filing has no clock-in even
		// though it derives as working; punches stay rejected until the
		// correction lands.
		if attendance.DeriveStatus(day, breaks) != attendance.StatusWorking || day.ClockIn == nil {
			return attendance.ErrIllegalTransition
		}

		if _, err := s.breakRepo.Create(ctx, attendance.BreakInterval{
			DayID: day.ID,
			Start: now,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return s.todayResponse(*day, attendance.StatusOnBreak), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	now := s.now()
	date := s.dateOf(now)

	var day *attendance.AttendanceDay
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var breaks []attendance.BreakInterval
		var err error
		day, breaks, err = s.snapshotForUpdate(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if attendance.DeriveStatus(day, breaks) != attendance.StatusOnBreak {
			return attendance.ErrIllegalTransition
		}

		open := attendance.OpenBreak(breaks)
		if err := s.breakRepo.Close(ctx, open.ID, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return s.todayResponse(*day, attendance.StatusWorking), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	now := s.now()
	date := s.dateOf(now)

	var day *attendance.AttendanceDay
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var breaks []attendance.BreakInterval
		var err error
		day, breaks, err = s.snapshotForUpdate(ctx, employeeID, date)
		if err != nil {
			return err
		}
		status := attendance.DeriveStatus(day, breaks)
		if status != attendance.StatusWorking && status != attendance.StatusOnBreak {
			return attendance.ErrIllegalTransition
		}
		// Never stamp a clock-out onto a day without a clock-in (a row a
		// correction filing materialized).
		if day.ClockIn == nil {
			return attendance.ErrIllegalTransition
		}

		// Clocking out mid-break must not leave a dangling open interval;
		// close it at clock-out time.
		if open := attendance.OpenBreak(breaks); open != nil {
			if err := s.breakRepo.Close(ctx, open.ID, now); err != nil {
				return err
			}
		}

		if err := s.dayRepo.SetClockOut(ctx, day.ID, now); err != nil {
			return err
		}
		day.ClockOut = &now
		return nil
	})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return s.todayResponse(*day, attendance.StatusFinished), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	date := s.dateOf(s.now())

	day, err := s.dayRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	var breaks []attendance.BreakInterval
	if day != nil {
		breaks, err = s.breakRepo.ListByDay(ctx, day.ID)
		if err != nil {
			return attendance.TodayResponse{}, fmt.Errorf("failed to list break intervals: %w", err)
		}
	}

	status := attendance.DeriveStatus(day, breaks)
	if day == nil {
		return attendance.TodayResponse{
			Date:   date.Format("2006-01-02"),
			Status: status,
		}, nil
	}
	return s.todayResponse(*day, status), nil
}

// GetDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDay(ctx context.Context, employeeID string, date time.Time) (attendance.DayDetailResponse, error) {
	date = s.pinDate(date)

	day, err := s.dayRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.DayDetailResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}
	if day == nil {
		return attendance.DayDetailResponse{}, attendance.ErrDayNotFound
	}

	breaks, err := s.breakRepo.ListByDay(ctx, day.ID)
	if err != nil {
		return attendance.DayDetailResponse{}, fmt.Errorf("failed to list break intervals: %w", err)
	}

	hasPending, err := s.requestRepo.HasPendingForDay(ctx, day.ID)
	if err != nil {
		return attendance.DayDetailResponse{}, fmt.Errorf("failed to check pending correction request: %w", err)
	}

	breakMins := attendance.BreakMinutes(breaks)
	resp := attendance.DayDetailResponse{
		ID:                day.ID,
		EmployeeID:        day.EmployeeID,
		Date:              day.Date.In(s.loc).Format("2006-01-02"),
		ClockIn:           attendance.FormatClock(day.ClockIn, s.loc),
		ClockOut:          attendance.FormatClock(day.ClockOut, s.loc),
		Note:              day.Note,
		BreakTime:         attendance.FormatMinutesBlank(&breakMins),
		WorkTime:          attendance.FormatMinutesBlank(attendance.NetWorkMinutes(day.ClockIn, day.ClockOut, breakMins)),
		HasPendingRequest: hasPending,
	}
	for _, b := range breaks {
		start := b.Start
		resp.Breaks = append(resp.Breaks, attendance.BreakResponse{
			Start: *attendance.FormatClock(&start, s.loc),
			End:   attendance.FormatClock(b.End, s.loc),
		})
	}

	return resp, nil
}

// ListMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) (attendance.MonthResponse, error) {
	days, err := s.dayRepo.ListByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthResponse{}, fmt.Errorf("failed to list attendance days: %w", err)
	}

	dayIDs := make([]string, 0, len(days))
	byDate := make(map[string]attendance.AttendanceDay, len(days))
	for _, d := range days {
		dayIDs = append(dayIDs, d.ID)
		byDate[d.Date.In(s.loc).Format("2006-01-02")] = d
	}

	breaksByDay, err := s.breakRepo.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return attendance.MonthResponse{}, fmt.Errorf("failed to list break intervals: %w", err)
	}

	// One row per calendar day, punched or not.
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	rows := make([]attendance.DayRowResponse, 0, daysInMonth)
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		dateStr := time.Date(year, month, dayNum, 0, 0, 0, 0, s.loc).Format("2006-01-02")
		day, ok := byDate[dateStr]
		if !ok {
			rows = append(rows, attendance.DayRowResponse{Date: dateStr})
			continue
		}
		rows = append(rows, s.dayRow(day, breaksByDay[day.ID]))
	}

	return attendance.MonthResponse{
		Year:  year,
		Month: int(month),
		Days:  rows,
	}, nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.DayRowResponse, error) {
	date = s.pinDate(date)

	days, err := s.dayRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}

	dayIDs := make([]string, 0, len(days))
	for _, d := range days {
		dayIDs = append(dayIDs, d.ID)
	}
	breaksByDay, err := s.breakRepo.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list break intervals: %w", err)
	}

	rows := make([]attendance.DayRowResponse, 0, len(days))
	for _, d := range days {
		row := s.dayRow(d, breaksByDay[d.ID])
		row.EmployeeID = d.EmployeeID
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *AttendanceServiceImpl) dayRow(day attendance.AttendanceDay, breaks []attendance.BreakInterval) attendance.DayRowResponse {
	breakMins := attendance.BreakMinutes(breaks)
	return attendance.DayRowResponse{
		Date:      day.Date.In(s.loc).Format("2006-01-02"),
		ClockIn:   attendance.FormatClock(day.ClockIn, s.loc),
		ClockOut:  attendance.FormatClock(day.ClockOut, s.loc),
		BreakTime: attendance.FormatMinutesBlank(&breakMins),
		WorkTime:  attendance.FormatMinutesBlank(attendance.NetWorkMinutes(day.ClockIn, day.ClockOut, breakMins)),
	}
}

func (s *AttendanceServiceImpl) todayResponse(day attendance.AttendanceDay, status attendance.Status) attendance.TodayResponse {
	return attendance.TodayResponse{
		Date:     day.Date.In(s.loc).Format("2006-01-02"),
		Status:   status,
		ClockIn:  attendance.FormatClock(day.ClockIn, s.loc),
		ClockOut: attendance.FormatClock(day.ClockOut, s.loc),
	}
}
