package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ems-hq/ems-backend-go/internal/domain/dashboard"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetAttendanceTrend(w http.ResponseWriter, r *http.Request)
	GetEmployeePerformance(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats implements DashboardHandler.
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		slog.Error("GetStats service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// GetAttendanceTrend implements DashboardHandler. `days` defaults to 7.
func (h *dashboardHandlerImpl) GetAttendanceTrend(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	trend, err := h.dashboardService.GetAttendanceTrend(r.Context(), days)
	if err != nil {
		slog.Error("GetAttendanceTrend service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, trend)
}

// GetEmployeePerformance implements DashboardHandler.
func (h *dashboardHandlerImpl) GetEmployeePerformance(w http.ResponseWriter, r *http.Request) {
	entries, err := h.dashboardService.GetEmployeePerformance(r.Context())
	if err != nil {
		slog.Error("GetEmployeePerformance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// GetMonthlyReport implements DashboardHandler. Month and year default to the
// current calendar month when absent.
func (h *dashboardHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	report, err := h.dashboardService.GetMonthlyReport(r.Context(), month, year)
	if err != nil {
		slog.Error("GetMonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}
