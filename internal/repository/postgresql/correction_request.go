package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) correction.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, day_id, employee_id, clock_in, clock_out, note, status, created_at, updated_at`

func scanRequest(row pgx.Row) (correction.CorrectionRequest, error) {
	var req correction.CorrectionRequest
	err := row.Scan(
		&req.ID, &req.DayID, &req.EmployeeID,
		&req.ClockIn, &req.ClockOut, &req.Note, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements correction.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO correction_requests (day_id, employee_id, clock_in, clock_out, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.DayID,
		req.EmployeeID,
		req.ClockIn,
		req.ClockOut,
		req.Note,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return req, nil
}

func (r *requestRepository) getByID(ctx context.Context, id string, forUpdate bool) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM correction_requests
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.CorrectionRequest{}, correction.ErrRequestNotFound
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}

	return req, nil
}

// GetByID implements correction.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements correction.RequestRepository.
func (r *requestRepository) GetByIDForUpdate(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	return r.getByID(ctx, id, true)
}

// HasPendingForDay implements correction.RequestRepository.
func (r *requestRepository) HasPendingForDay(ctx context.Context, dayID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM correction_requests
			WHERE day_id = $1
			  AND status = $2
		)
	`

	var hasPending bool
	if err := q.QueryRow(ctx, query, dayID, correction.RequestStatusPending).Scan(&hasPending); err != nil {
		return false, fmt.Errorf("failed to check pending correction request: %w", err)
	}

	return hasPending, nil
}

// List implements correction.RequestRepository.
func (r *requestRepository) List(ctx context.Context, filter correction.RequestFilter) ([]correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT ` + requestColumns + `
		FROM correction_requests
		WHERE ` + baseWhere + `
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query correction requests: %w", err)
	}
	defer rows.Close()

	var requests []correction.CorrectionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// MarkApproved implements correction.RequestRepository.
func (r *requestRepository) MarkApproved(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE correction_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, correction.RequestStatusApproved, id, correction.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark correction request approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrStaleRequest
	}

	return nil
}
