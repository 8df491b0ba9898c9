package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("must check in first")
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
