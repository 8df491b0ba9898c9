package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
)

type attendanceKey struct {
	userID string
	date   string
}

type attendanceRepository struct {
	mu      sync.Mutex
	records map[attendanceKey]attendance.Attendance
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{records: make(map[attendanceKey]attendance.Attendance)}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{userID: att.UserID, date: dayKey(att.Date)}
	if _, exists := r.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	now := time.Now()
	att.CreatedAt = now
	att.UpdatedAt = now
	r.records[key] = att
	return att, nil
}

func (r *attendanceRepository) CloseOpen(ctx context.Context, userID string, date time.Time, checkOut time.Time) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{userID: userID, date: dayKey(date)}
	att, exists := r.records[key]
	if !exists || att.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	att.CheckOut = &checkOut
	att.UpdatedAt = time.Now()
	r.records[key] = att
	return att, nil
}

func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, exists := r.records[attendanceKey{userID: userID, date: dayKey(date)}]
	if !exists {
		return nil, nil
	}
	return &att, nil
}

func (r *attendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(attendance.Attendance) bool { return true }), nil
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(a attendance.Attendance) bool { return a.UserID == userID }), nil
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(a attendance.Attendance) bool {
		return !a.Date.Before(from) && !a.Date.After(to)
	}), nil
}

func (r *attendanceRepository) collect(keep func(attendance.Attendance) bool) []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(r.records))
	for _, a := range r.records {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
