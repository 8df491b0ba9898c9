package attendance

import (
	"context"
	"time"
)

// AttendanceRepository owns attendance rows keyed by (user_id, date).
//
// CreateIfAbsent and CloseOpen are the serialization points for racing
// check-ins and check-outs: both are atomic conditional writes, so two
// concurrent calls for the same key produce exactly one winner and the loser
// observes the matching state-conflict error.
type AttendanceRepository interface {
	// CreateIfAbsent inserts the record unless one already exists for
	// (UserID, Date); in that case it returns ErrAlreadyCheckedIn and leaves
	// the existing row untouched.
	CreateIfAbsent(ctx context.Context, att Attendance) (Attendance, error)

	// CloseOpen sets check_out on the open record for (userID, date).
	// Returns ErrNotCheckedIn when no record exists for the day and
	// ErrAlreadyCheckedOut when the record is already closed.
	CloseOpen(ctx context.Context, userID string, date time.Time, checkOut time.Time) (Attendance, error)

	// GetByUserAndDate returns nil (not an error) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// List returns every record ordered by date ascending, with user names
	// joined for the admin view.
	List(ctx context.Context) ([]Attendance, error)

	// ListByUser returns one user's records ordered by date ascending.
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByDateRange returns records with from <= date <= to, date ascending.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
