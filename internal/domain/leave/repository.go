package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository owns leave request rows. Resolve is the
// serialization point for racing approvals: it transitions pending requests
// atomically, so concurrent approve+reject yield exactly one winner.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Resolve moves a pending request to a terminal status. Returns
	// ErrLeaveRequestNotFound for an unknown id and
	// ErrLeaveRequestAlreadyProcessed when the request is already terminal.
	Resolve(ctx context.Context, id string, status LeaveRequestStatus, resolvedBy string, resolvedAt time.Time) (LeaveRequest, error)

	// ListPending returns pending requests oldest-first, with user names
	// joined for the approval queue.
	ListPending(ctx context.Context) ([]LeaveRequest, error)

	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	ListAll(ctx context.Context) ([]LeaveRequest, error)
}
