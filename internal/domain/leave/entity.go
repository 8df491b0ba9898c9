package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transitions.
func (s LeaveRequestStatus) IsTerminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// LeaveRequest entity. Status starts pending and moves exactly once to
// approved or rejected; terminal requests are immutable and never deleted.
type LeaveRequest struct {
	ID         string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveRequestStatus
	ResolvedBy *string
	ResolvedAt *time.Time
	CreatedAt  time.Time

	// Join
	UserName *string
}
