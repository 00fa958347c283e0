package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

// Create implements attendance.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, b attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_intervals (day_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.DayID, b.Start, b.End).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return attendance.BreakInterval{}, fmt.Errorf("failed to create break interval: %w", err)
	}

	return b, nil
}

// Close implements attendance.BreakRepository.
func (r *breakRepository) Close(ctx context.Context, id string, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_intervals
		SET end_time = $1, updated_at = NOW()
		WHERE id = $2 AND end_time IS NULL
	`

	tag, err := q.Exec(ctx, query, end, id)
	if err != nil {
		return fmt.Errorf("failed to close break interval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no open break interval with id %s", id)
	}

	return nil
}

// ListByDay implements attendance.BreakRepository.
func (r *breakRepository) ListByDay(ctx context.Context, dayID string) ([]attendance.BreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, day_id, start_time, end_time, created_at, updated_at
		FROM break_intervals
		WHERE day_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query break intervals: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.BreakInterval
	for rows.Next() {
		var b attendance.BreakInterval
		if err := rows.Scan(&b.ID, &b.DayID, &b.Start, &b.End, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		breaks = append(breaks, b)
	}

	return breaks, rows.Err()
}

// ListByDayIDs implements attendance.BreakRepository.
func (r *breakRepository) ListByDayIDs(ctx context.Context, dayIDs []string) (map[string][]attendance.BreakInterval, error) {
	result := make(map[string][]attendance.BreakInterval, len(dayIDs))
	if len(dayIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, day_id, start_time, end_time, created_at, updated_at
		FROM break_intervals
		WHERE day_id = ANY($1)
		ORDER BY day_id, start_time
	`

	rows, err := q.Query(ctx, query, dayIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query break intervals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b attendance.BreakInterval
		if err := rows.Scan(&b.ID, &b.DayID, &b.Start, &b.End, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		result[b.DayID] = append(result[b.DayID], b)
	}

	return result, rows.Err()
}

// DeleteByDay implements attendance.BreakRepository.
func (r *breakRepository) DeleteByDay(ctx context.Context, dayID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM break_intervals WHERE day_id = $1`, dayID); err != nil {
		return fmt.Errorf("failed to delete break intervals: %w", err)
	}

	return nil
}
