package dashboard

import "context"

// DashboardService derives read-side projections over the ledger, registry
// and directory. Every call recomputes from current data; nothing is stored.
type DashboardService interface {
	// GetStats returns the parameterless dashboard summary.
	GetStats(ctx context.Context) (*StatsResponse, error)

	// GetAttendanceTrend returns one entry per calendar day for the last
	// `days` days ending today, oldest first.
	GetAttendanceTrend(ctx context.Context, days int) ([]TrendEntry, error)

	// GetEmployeePerformance returns one row per employee, best rate first.
	GetEmployeePerformance(ctx context.Context) ([]PerformanceEntry, error)

	// GetMonthlyReport aggregates a calendar month; zero month/year default
	// to the current month.
	GetMonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error)
}
