package postgresql

import (
	"context"
	"fmt"

	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

type proposedBreakRepository struct {
	db *database.DB
}

func NewProposedBreakRepository(db *database.DB) correction.ProposedBreakRepository {
	return &proposedBreakRepository{db: db}
}

// CreateBatch implements correction.ProposedBreakRepository.
func (r *proposedBreakRepository) CreateBatch(ctx context.Context, requestID string, breaks []correction.ProposedBreakInterval) ([]correction.ProposedBreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO proposed_break_intervals (request_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	created := make([]correction.ProposedBreakInterval, 0, len(breaks))
	for _, b := range breaks {
		b.RequestID = requestID
		if err := q.QueryRow(ctx, query, requestID, b.Start, b.End).Scan(&b.ID); err != nil {
			return nil, fmt.Errorf("failed to create proposed break interval: %w", err)
		}
		created = append(created, b)
	}

	return created, nil
}

// ListByRequest implements correction.ProposedBreakRepository.
func (r *proposedBreakRepository) ListByRequest(ctx context.Context, requestID string) ([]correction.ProposedBreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_id, start_time, end_time
		FROM proposed_break_intervals
		WHERE request_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposed break intervals: %w", err)
	}
	defer rows.Close()

	var breaks []correction.ProposedBreakInterval
	for rows.Next() {
		var b correction.ProposedBreakInterval
		if err := rows.Scan(&b.ID, &b.RequestID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("failed to scan proposed break interval: %w", err)
		}
		breaks = append(breaks, b)
	}

	return breaks, rows.Err()
}
