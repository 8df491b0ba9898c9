package attendance

import "context"

// AttendanceService is the attendance ledger boundary. "Today" is resolved
// against the service's injected reference clock.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)
	ListAll(ctx context.Context) ([]AttendanceResponse, error)
	ListByUser(ctx context.Context, userID string) ([]AttendanceResponse, error)
}
