package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

type dayRepository struct {
	db *database.DB
}

func NewDayRepository(db *database.DB) attendance.DayRepository {
	return &dayRepository{db: db}
}

const dayColumns = `id, employee_id, date, clock_in, clock_out, note, created_at, updated_at`

func scanDay(row pgx.Row) (attendance.AttendanceDay, error) {
	var day attendance.AttendanceDay
	err := row.Scan(
		&day.ID, &day.EmployeeID, &day.Date,
		&day.ClockIn, &day.ClockOut, &day.Note,
		&day.CreatedAt, &day.UpdatedAt,
	)
	return day, err
}

// Create implements attendance.DayRepository.
func (r *dayRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_days (employee_id, date, clock_in, clock_out, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.EmployeeID,
		day.Date,
		day.ClockIn,
		day.ClockOut,
		day.Note,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

func (r *dayRepository) getByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, forUpdate bool) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE employee_id = $1
		  AND date = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	day, err := scanDay(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return &day, nil
}

// GetByEmployeeAndDate implements attendance.DayRepository.
func (r *dayRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, false)
}

// GetByEmployeeAndDateForUpdate implements attendance.DayRepository.
func (r *dayRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	return r.getByEmployeeAndDate(ctx, employeeID, date, true)
}

// SetClockOut implements attendance.DayRepository.
func (r *dayRepository) SetClockOut(ctx context.Context, id string, clockOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_days
		SET clock_out = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, clockOut, id)
	if err != nil {
		return fmt.Errorf("failed to set clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDayNotFound
	}

	return nil
}

// Overwrite implements attendance.DayRepository.
func (r *dayRepository) Overwrite(ctx context.Context, id string, clockIn, clockOut time.Time, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_days
		SET clock_in = $1, clock_out = $2, note = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, clockIn, clockOut, note, id)
	if err != nil {
		return fmt.Errorf("failed to overwrite attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDayNotFound
	}

	return nil
}

// ListByEmployeeMonth implements attendance.DayRepository.
func (r *dayRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	rows, err := q.Query(ctx, query, employeeID, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// ListByDate implements attendance.DayRepository.
func (r *dayRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dayColumns + `
		FROM attendance_days
		WHERE date = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance days by date: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}

	return days, rows.Err()
}
