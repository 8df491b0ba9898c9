package leave

import "context"

// LeaveService is the leave registry boundary. Approve/Reject are admin-only;
// the HTTP boundary enforces the role before the service is reached.
type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, requestID string, resolvedBy string) (LeaveResponse, error)
	Reject(ctx context.Context, requestID string, resolvedBy string) (LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
}
