package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, start_date, end_date, reason, status, resolved_by, resolved_at, created_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.StartDate,
		&created.EndDate,
		&created.Reason,
		&created.Status,
		&created.ResolvedBy,
		&created.ResolvedAt,
		&created.CreatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, reason, status, resolved_by, resolved_at, created_at
		FROM leave_requests
		WHERE id = $1
	`

	var found leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.UserID,
		&found.StartDate,
		&found.EndDate,
		&found.Reason,
		&found.Status,
		&found.ResolvedBy,
		&found.ResolvedAt,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return found, nil
}

// Resolve implements leave.LeaveRequestRepository.
// The status guard in the WHERE clause makes concurrent approve+reject pick
// exactly one winner; the loser is told the request was already processed.
func (r *leaveRequestRepository) Resolve(ctx context.Context, id string, status leave.LeaveRequestStatus, resolvedBy string, resolvedAt time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, resolved_by = $2, resolved_at = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING id, user_id, start_date, end_date, reason, status, resolved_by, resolved_at, created_at
	`

	var resolved leave.LeaveRequest
	err := q.QueryRow(ctx, query, status, resolvedBy, resolvedAt, id).Scan(
		&resolved.ID,
		&resolved.UserID,
		&resolved.StartDate,
		&resolved.EndDate,
		&resolved.Reason,
		&resolved.Status,
		&resolved.ResolvedBy,
		&resolved.ResolvedAt,
		&resolved.CreatedAt,
	)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to resolve leave request: %w", err)
	}

	// No pending row matched: distinguish unknown id from terminal state.
	existing, lookupErr := r.GetByID(ctx, id)
	if lookupErr != nil {
		return leave.LeaveRequest{}, lookupErr
	}
	if existing.Status.IsTerminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return leave.LeaveRequest{}, fmt.Errorf("leave request %s in unexpected status %s", id, existing.Status)
}

// ListPending implements leave.LeaveRequestRepository. Oldest first so the
// approval queue is fair.
func (r *leaveRequestRepository) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.start_date, l.end_date, l.reason, l.status,
			   l.resolved_by, l.resolved_at, l.created_at,
			   u.name AS user_name
		FROM leave_requests l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.status = 'pending'
		ORDER BY l.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRows(rows, true)
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, reason, status, resolved_by, resolved_at, created_at
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by user: %w", err)
	}
	defer rows.Close()

	return scanLeaveRows(rows, false)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, reason, status, resolved_by, resolved_at, created_at
		FROM leave_requests
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRows(rows, false)
}

func scanLeaveRows(rows pgx.Rows, withUserName bool) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		dest := []interface{}{
			&req.ID,
			&req.UserID,
			&req.StartDate,
			&req.EndDate,
			&req.Reason,
			&req.Status,
			&req.ResolvedBy,
			&req.ResolvedAt,
			&req.CreatedAt,
		}
		if withUserName {
			dest = append(dest, &req.UserName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
