package dashboard

// ========== DASHBOARD STATS ==========

// StatsResponse is the parameterless dashboard summary.
type StatsResponse struct {
	TotalUsers     int64                      `json:"total_users"`
	TotalEmployees int64                      `json:"total_employees"`
	TotalAdmins    int64                      `json:"total_admins"`
	Today          TodayStats                 `json:"today"`
	Leaves         LeaveStats                 `json:"leaves"`
	ThisMonth      MonthStats                 `json:"this_month"`
	Departments    map[string]DepartmentStats `json:"departments"`
}

// TodayStats covers the current calendar day. Absent counts employees only;
// admins are excluded from the denominator.
type TodayStats struct {
	Present        int64 `json:"present"`
	Absent         int64 `json:"absent"`
	TotalCheckedIn int64 `json:"total_checked_in"`
}

type LeaveStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type MonthStats struct {
	TotalRecords    int64 `json:"total_records"`
	UniqueEmployees int64 `json:"unique_employees"`
}

type DepartmentStats struct {
	Present int64 `json:"present"`
	Total   int64 `json:"total"`
}

// ========== ATTENDANCE TREND ==========

// TrendEntry is one calendar day of the attendance chart.
// Present + Absent always equals the employee count for that day.
type TrendEntry struct {
	Date      string `json:"date"`
	Present   int64  `json:"present"`
	Absent    int64  `json:"absent"`
	CheckedIn int64  `json:"checked_in"`
}

// ========== EMPLOYEE PERFORMANCE ==========

// PerformanceEntry summarizes one employee, sorted by AttendanceRate desc.
type PerformanceEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	TotalRecords   int64  `json:"total_attendance_records"`
	PresentDays    int64  `json:"present_days"`
	AttendanceRate int    `json:"attendance_rate"`
	ApprovedLeaves int64  `json:"approved_leaves"`
	PendingLeaves  int64  `json:"pending_leaves"`
}

// ========== MONTHLY REPORT ==========

// MonthlyReport aggregates one calendar month. Absence baselines assume a
// 20-workday month.
type MonthlyReport struct {
	Month           int                      `json:"month"`
	Year            int                      `json:"year"`
	TotalRecords    int64                    `json:"total_records"`
	UniqueEmployees int64                    `json:"unique_employees"`
	TotalPresent    int64                    `json:"total_present"`
	TotalAbsent     int64                    `json:"total_absent"`
	EmployeeSummary []MonthlyEmployeeSummary `json:"employee_summary"`
}

type MonthlyEmployeeSummary struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Present int64  `json:"present"`
	Absent  int64  `json:"absent"`
}
