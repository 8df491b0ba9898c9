package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
	"github.com/ems-hq/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CreateIfAbsent implements attendance.AttendanceRepository.
// The insert races on the (user_id, date) unique index; a conflicting row
// means someone already checked in and the loser gets ErrAlreadyCheckedIn.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, user_id, date, check_in)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, user_id, date, check_in, check_out, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.Date,
		att.CheckIn,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Date,
		&created.CheckIn,
		&created.CheckOut,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// ON CONFLICT DO NOTHING returns no row when one already exists
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// CloseOpen implements attendance.AttendanceRepository.
// The conditional update is the atomic winner-picker for racing check-outs;
// when no row matched we look the record up once more to report why.
func (a *attendanceRepository) CloseOpen(ctx context.Context, userID string, date time.Time, checkOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, updated_at = NOW()
		WHERE user_id = $2 AND date = $3 AND check_in IS NOT NULL AND check_out IS NULL
		RETURNING id, user_id, date, check_in, check_out, created_at, updated_at
	`

	var closed attendance.Attendance
	err := q.QueryRow(ctx, query, checkOut, userID, date).Scan(
		&closed.ID,
		&closed.UserID,
		&closed.Date,
		&closed.CheckIn,
		&closed.CheckOut,
		&closed.CreatedAt,
		&closed.UpdatedAt,
	)
	if err == nil {
		return closed, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	existing, lookupErr := a.GetByUserAndDate(ctx, userID, date)
	if lookupErr != nil {
		return attendance.Attendance{}, lookupErr
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&att.ID,
		&att.UserID,
		&att.Date,
		&att.CheckIn,
		&att.CheckOut,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // absent: no record for the day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.created_at, a.updated_at,
			   u.name AS user_name
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.date ASC, a.check_in ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, true)
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE user_id = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by user: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, false)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date range: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, false)
}

func scanAttendanceRows(rows pgx.Rows, withUserName bool) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		dest := []interface{}{
			&att.ID,
			&att.UserID,
			&att.Date,
			&att.CheckIn,
			&att.CheckOut,
			&att.CreatedAt,
			&att.UpdatedAt,
		}
		if withUserName {
			dest = append(dest, &att.UserName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
