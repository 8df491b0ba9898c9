package attendance

import (
	"time"
)

// Status is derived from a record's timestamps, never stored.
type Status string

const (
	StatusPresent       Status = "present"         // checked in and out
	StatusCheckedInOnly Status = "checked_in_only" // open cycle
	StatusAbsent        Status = "absent"          // no record for the day
)

// Attendance is one user's record for one calendar day.
// At most one row exists per (UserID, Date).
type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time // calendar day, midnight
	CheckIn   *time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName *string
}

// DerivedStatus reports the record's state. A nil receiver or a record with no
// check-in stands for the absent sentinel.
func (a *Attendance) DerivedStatus() Status {
	if a == nil || a.CheckIn == nil {
		return StatusAbsent
	}
	if a.CheckOut == nil {
		return StatusCheckedInOnly
	}
	return StatusPresent
}

// IsPresent reports whether both check-in and check-out are recorded.
func (a *Attendance) IsPresent() bool {
	return a.DerivedStatus() == StatusPresent
}
