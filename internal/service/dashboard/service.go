package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
	"github.com/ems-hq/ems-backend-go/internal/domain/dashboard"
	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 365
)

// workdayBaseline is the assumed number of workdays in a month for the
// monthly report's absence column.
const workdayBaseline = 20

type DashboardServiceImpl struct {
	userRepository       user.UserRepository
	attendanceRepository attendance.AttendanceRepository
	leaveRepository      leave.LeaveRequestRepository
	clock                clock.Clock
}

func NewDashboardService(
	userRepository user.UserRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRequestRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		userRepository:       userRepository,
		attendanceRepository: attendanceRepository,
		leaveRepository:      leaveRepository,
		clock:                clk,
	}
}

// GetStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	var (
		users       []user.User
		attendances []attendance.Attendance
		leaves      []leave.LeaveRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.userRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		attendances, err = s.attendanceRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		leaves, err = s.leaveRepository.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	now := s.clock.Now()
	today := clock.Day(now)

	stats := &dashboard.StatsResponse{
		TotalUsers:  int64(len(users)),
		Departments: make(map[string]dashboard.DepartmentStats),
	}

	usersByID := make(map[string]user.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
		if u.IsAdmin() {
			stats.TotalAdmins++
		} else {
			stats.TotalEmployees++
		}
		dept := stats.Departments[u.Department]
		dept.Total++
		stats.Departments[u.Department] = dept
	}

	monthlyUsers := make(map[string]struct{})
	for i := range attendances {
		record := &attendances[i]
		owner, known := usersByID[record.UserID]

		if sameMonth(record.Date, today) {
			stats.ThisMonth.TotalRecords++
			monthlyUsers[record.UserID] = struct{}{}
		}

		if !record.Date.Equal(today) {
			continue
		}
		if record.CheckIn != nil {
			stats.Today.TotalCheckedIn++
			if known {
				dept := stats.Departments[owner.Department]
				dept.Present++
				stats.Departments[owner.Department] = dept
			}
		}
		if record.IsPresent() && known && !owner.IsAdmin() {
			stats.Today.Present++
		}
	}
	stats.ThisMonth.UniqueEmployees = int64(len(monthlyUsers))

	stats.Today.Absent = stats.TotalEmployees - stats.Today.Present
	if stats.Today.Absent < 0 {
		stats.Today.Absent = 0
	}

	for _, l := range leaves {
		stats.Leaves.Total++
		switch l.Status {
		case leave.LeaveRequestStatusPending:
			stats.Leaves.Pending++
		case leave.LeaveRequestStatusApproved:
			stats.Leaves.Approved++
		case leave.LeaveRequestStatusRejected:
			stats.Leaves.Rejected++
		}
	}

	return stats, nil
}

// GetAttendanceTrend implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAttendanceTrend(ctx context.Context, days int) ([]dashboard.TrendEntry, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	today := clock.Day(s.clock.Now())
	from := today.AddDate(0, 0, -(days - 1))

	var (
		users   []user.User
		records []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.userRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.attendanceRepository.ListByDateRange(gctx, from, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load trend data: %w", err)
	}

	employees := make(map[string]struct{})
	for _, u := range users {
		if !u.IsAdmin() {
			employees[u.ID] = struct{}{}
		}
	}
	employeeCount := int64(len(employees))

	byDay := make(map[string][]attendance.Attendance)
	for _, record := range records {
		key := record.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], record)
	}

	trend := make([]dashboard.TrendEntry, 0, days)
	for day := from; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		entry := dashboard.TrendEntry{Date: key}
		for i := range byDay[key] {
			record := &byDay[key][i]
			if _, isEmployee := employees[record.UserID]; !isEmployee {
				continue
			}
			if record.CheckIn != nil {
				entry.CheckedIn++
			}
			if record.IsPresent() {
				entry.Present++
			}
		}
		entry.Absent = employeeCount - entry.Present
		if entry.Absent < 0 {
			entry.Absent = 0
		}
		trend = append(trend, entry)
	}

	return trend, nil
}

// GetEmployeePerformance implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeePerformance(ctx context.Context) ([]dashboard.PerformanceEntry, error) {
	var (
		users   []user.User
		records []attendance.Attendance
		leaves  []leave.LeaveRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.userRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.attendanceRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		leaves, err = s.leaveRepository.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load performance data: %w", err)
	}

	today := clock.Day(s.clock.Now())

	type tally struct {
		total     int64
		present   int64
		firstDay  time.Time
		approved  int64
		pending   int64
		hasRecord bool
	}
	tallies := make(map[string]*tally)
	tallyFor := func(userID string) *tally {
		tl, ok := tallies[userID]
		if !ok {
			tl = &tally{}
			tallies[userID] = tl
		}
		return tl
	}

	for i := range records {
		record := &records[i]
		tl := tallyFor(record.UserID)
		tl.total++
		if record.IsPresent() {
			tl.present++
		}
		if !tl.hasRecord || record.Date.Before(tl.firstDay) {
			tl.firstDay = record.Date
			tl.hasRecord = true
		}
	}
	for _, l := range leaves {
		tl := tallyFor(l.UserID)
		switch l.Status {
		case leave.LeaveRequestStatusApproved:
			tl.approved++
		case leave.LeaveRequestStatusPending:
			tl.pending++
		}
	}

	entries := make([]dashboard.PerformanceEntry, 0, len(users))
	for _, u := range users {
		if u.IsAdmin() {
			continue
		}
		entry := dashboard.PerformanceEntry{
			UserID:     u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Department: u.Department,
		}
		if tl, ok := tallies[u.ID]; ok {
			entry.TotalRecords = tl.total
			entry.PresentDays = tl.present
			entry.ApprovedLeaves = tl.approved
			entry.PendingLeaves = tl.pending
			if tl.hasRecord {
				trackedDays := int64(today.Sub(clock.Day(tl.firstDay)).Hours()/24) + 1
				entry.AttendanceRate = attendanceRate(tl.present, trackedDays)
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AttendanceRate != entries[j].AttendanceRate {
			return entries[i].AttendanceRate > entries[j].AttendanceRate
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// GetMonthlyReport implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetMonthlyReport(ctx context.Context, month, year int) (*dashboard.MonthlyReport, error) {
	now := s.clock.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	var (
		users   []user.User
		records []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.userRepository.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.attendanceRepository.ListByDateRange(gctx, monthStart, monthEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load monthly report data: %w", err)
	}

	report := &dashboard.MonthlyReport{
		Month:           month,
		Year:            year,
		EmployeeSummary: []dashboard.MonthlyEmployeeSummary{},
	}

	presentByUser := make(map[string]int64)
	uniqueUsers := make(map[string]struct{})
	for i := range records {
		record := &records[i]
		report.TotalRecords++
		uniqueUsers[record.UserID] = struct{}{}
		if record.IsPresent() {
			presentByUser[record.UserID]++
		}
	}
	report.UniqueEmployees = int64(len(uniqueUsers))

	for _, u := range users {
		if u.IsAdmin() {
			continue
		}
		present := presentByUser[u.ID]
		absent := int64(workdayBaseline) - present
		if absent < 0 {
			absent = 0
		}
		report.TotalPresent += present
		report.TotalAbsent += absent
		report.EmployeeSummary = append(report.EmployeeSummary, dashboard.MonthlyEmployeeSummary{
			Name:    u.Name,
			Email:   u.Email,
			Present: present,
			Absent:  absent,
		})
	}

	sort.Slice(report.EmployeeSummary, func(i, j int) bool {
		return report.EmployeeSummary[i].Name < report.EmployeeSummary[j].Name
	})

	return report, nil
}

// attendanceRate rounds present/tracked to a whole percentage, clamped to
// [0,100]. Zero tracked days reads as a rate of zero.
func attendanceRate(present, tracked int64) int {
	if tracked <= 0 {
		return 0
	}
	rate := int(math.Round(float64(present) / float64(tracked) * 100))
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
