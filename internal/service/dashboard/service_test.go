package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
	"github.com/ems-hq/ems-backend-go/internal/domain/dashboard"
	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/ems-hq/ems-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users       user.UserRepository
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
	svc         dashboard.DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:       memory.NewUserRepository(),
		attendances: memory.NewAttendanceRepository(),
		leaves:      memory.NewLeaveRequestRepository(),
	}
	f.svc = NewDashboardService(f.users, f.attendances, f.leaves, clock.Fixed(reportTime))
	return f
}

func (f *fixture) addUser(t *testing.T, name string, role user.Role, department string) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Role:       role,
		Department: department,
	})
	require.NoError(t, err)
	return u
}

// addRecord inserts an attendance record for the given day offset from the
// reference date; closed controls whether check-out is set.
func (f *fixture) addRecord(t *testing.T, userID string, dayOffset int, closed bool) {
	t.Helper()
	day := clock.Day(reportTime).AddDate(0, 0, dayOffset)
	checkIn := day.Add(9 * time.Hour)
	att := attendance.Attendance{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    day,
		CheckIn: &checkIn,
	}
	if closed {
		checkOut := day.Add(17 * time.Hour)
		att.CheckOut = &checkOut
	}
	_, err := f.attendances.CreateIfAbsent(context.Background(), att)
	require.NoError(t, err)
}

func (f *fixture) addLeave(t *testing.T, userID string, status leave.LeaveRequestStatus) {
	t.Helper()
	_, err := f.leaves.Create(context.Background(), leave.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: clock.Day(reportTime),
		EndDate:   clock.Day(reportTime).AddDate(0, 0, 2),
		Reason:    "vacation",
		Status:    status,
		CreatedAt: reportTime,
	})
	require.NoError(t, err)
}

func TestGetStats(t *testing.T) {
	f := newFixture(t)

	// 10 employees, 2 admins; 6 employees fully present today.
	var employees []user.User
	for i := 0; i < 10; i++ {
		employees = append(employees, f.addUser(t, fmt.Sprintf("Employee %02d", i), user.RoleEmployee, "Engineering"))
	}
	f.addUser(t, "Admin One", user.RoleAdmin, "Management")
	f.addUser(t, "Admin Two", user.RoleAdmin, "Management")

	for i := 0; i < 6; i++ {
		f.addRecord(t, employees[i].ID, 0, true)
	}
	f.addLeave(t, employees[0].ID, leave.LeaveRequestStatusPending)

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(10), stats.TotalEmployees)
	assert.Equal(t, int64(2), stats.TotalAdmins)
	assert.Equal(t, int64(6), stats.Today.Present)
	assert.Equal(t, int64(4), stats.Today.Absent)
	assert.Equal(t, int64(6), stats.Today.TotalCheckedIn)
	assert.Equal(t, int64(1), stats.Leaves.Pending)
	assert.Equal(t, int64(1), stats.Leaves.Total)
	assert.Equal(t, int64(6), stats.ThisMonth.TotalRecords)
	assert.Equal(t, int64(6), stats.ThisMonth.UniqueEmployees)

	assert.Equal(t, int64(10), stats.Departments["Engineering"].Total)
	assert.Equal(t, int64(6), stats.Departments["Engineering"].Present)
	assert.Equal(t, int64(2), stats.Departments["Management"].Total)
	assert.Equal(t, int64(0), stats.Departments["Management"].Present)
}

func TestGetStats_EmptyDataset(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.Today.Present)
	assert.Equal(t, int64(0), stats.Today.Absent)
	assert.Equal(t, int64(0), stats.Leaves.Total)
	assert.Empty(t, stats.Departments)
}

func TestGetAttendanceTrend(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alice", user.RoleEmployee, "Engineering")
	b := f.addUser(t, "Bob", user.RoleEmployee, "Engineering")
	admin := f.addUser(t, "Admin", user.RoleAdmin, "Management")

	f.addRecord(t, a.ID, 0, true)   // today, present
	f.addRecord(t, b.ID, 0, false)  // today, open cycle
	f.addRecord(t, a.ID, -1, true)  // yesterday, present
	f.addRecord(t, admin.ID, 0, true)
	f.addRecord(t, a.ID, -10, true) // outside the window

	trend, err := f.svc.GetAttendanceTrend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, trend, 7)

	// Exactly 7 entries, strictly increasing by one calendar day.
	for i := 1; i < len(trend); i++ {
		prev, err := time.Parse("2006-01-02", trend[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", trend[i].Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
	}

	// present + absent equals the employee count on every entry.
	for _, entry := range trend {
		assert.Equal(t, int64(2), entry.Present+entry.Absent, entry.Date)
	}

	last := trend[6]
	assert.Equal(t, clock.Day(reportTime).Format("2006-01-02"), last.Date)
	assert.Equal(t, int64(1), last.Present)
	assert.Equal(t, int64(1), last.Absent)
	assert.Equal(t, int64(2), last.CheckedIn)

	yesterday := trend[5]
	assert.Equal(t, int64(1), yesterday.Present)
	assert.Equal(t, int64(1), yesterday.Absent)
}

func TestGetAttendanceTrend_DefaultDays(t *testing.T) {
	f := newFixture(t)

	trend, err := f.svc.GetAttendanceTrend(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, trend, 7)
}

func TestGetAttendanceTrend_ClampsDays(t *testing.T) {
	f := newFixture(t)

	trend, err := f.svc.GetAttendanceTrend(context.Background(), 1000000000)
	require.NoError(t, err)
	require.Len(t, trend, 365)
	assert.Equal(t, clock.Day(reportTime).AddDate(0, 0, -364).Format("2006-01-02"), trend[0].Date)
	assert.Equal(t, clock.Day(reportTime).Format("2006-01-02"), trend[364].Date)
}

func TestGetEmployeePerformance(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alice", user.RoleEmployee, "Engineering")
	b := f.addUser(t, "Bob", user.RoleEmployee, "HR")
	f.addUser(t, "Admin", user.RoleAdmin, "Management")

	// Alice: first record 4 days ago, 5 tracked days, 5 present.
	for offset := -4; offset <= 0; offset++ {
		f.addRecord(t, a.ID, offset, true)
	}
	// Bob: first record 3 days ago, 4 tracked days, 1 present.
	f.addRecord(t, b.ID, -3, true)
	f.addRecord(t, b.ID, 0, false)

	f.addLeave(t, b.ID, leave.LeaveRequestStatusApproved)
	f.addLeave(t, b.ID, leave.LeaveRequestStatusPending)

	entries, err := f.svc.GetEmployeePerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Sorted best rate first; admins excluded.
	assert.Equal(t, a.ID, entries[0].UserID)
	assert.Equal(t, 100, entries[0].AttendanceRate)
	assert.Equal(t, int64(5), entries[0].PresentDays)
	assert.Equal(t, int64(5), entries[0].TotalRecords)

	assert.Equal(t, b.ID, entries[1].UserID)
	assert.Equal(t, 25, entries[1].AttendanceRate)
	assert.Equal(t, int64(1), entries[1].PresentDays)
	assert.Equal(t, int64(2), entries[1].TotalRecords)
	assert.Equal(t, int64(1), entries[1].ApprovedLeaves)
	assert.Equal(t, int64(1), entries[1].PendingLeaves)

	for _, entry := range entries {
		assert.GreaterOrEqual(t, entry.AttendanceRate, 0)
		assert.LessOrEqual(t, entry.AttendanceRate, 100)
	}
}

func TestGetEmployeePerformance_NoRecords(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "Alice", user.RoleEmployee, "Engineering")

	entries, err := f.svc.GetEmployeePerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].AttendanceRate)
	assert.Equal(t, int64(0), entries[0].TotalRecords)
}

func TestGetMonthlyReport(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alice", user.RoleEmployee, "Engineering")
	b := f.addUser(t, "Bob", user.RoleEmployee, "HR")

	// Alice: 3 present days in March; Bob: none.
	f.addRecord(t, a.ID, 0, true)
	f.addRecord(t, a.ID, -1, true)
	f.addRecord(t, a.ID, -2, true)
	f.addRecord(t, b.ID, 0, false)

	report, err := f.svc.GetMonthlyReport(context.Background(), 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, int64(4), report.TotalRecords)
	assert.Equal(t, int64(2), report.UniqueEmployees)
	assert.Equal(t, int64(3), report.TotalPresent)
	assert.Equal(t, int64(17+20), report.TotalAbsent)

	require.Len(t, report.EmployeeSummary, 2)
	assert.Equal(t, "Alice", report.EmployeeSummary[0].Name)
	assert.Equal(t, int64(3), report.EmployeeSummary[0].Present)
	assert.Equal(t, int64(17), report.EmployeeSummary[0].Absent)
	assert.Equal(t, "Bob", report.EmployeeSummary[1].Name)
	assert.Equal(t, int64(0), report.EmployeeSummary[1].Present)
	assert.Equal(t, int64(20), report.EmployeeSummary[1].Absent)
}

func TestGetMonthlyReport_DefaultsToCurrentMonth(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.GetMonthlyReport(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2026, report.Year)
}
