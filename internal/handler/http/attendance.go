package http

import (
	"log/slog"
	"net/http"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/middleware"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. The acting user comes from the
// verified token, never from the request body.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req := attendance.CheckRequest{UserID: middleware.UserIDFromContext(r.Context())}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req := attendance.CheckRequest{UserID: middleware.UserIDFromContext(r.Context())}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Checked out", record)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	record, err := h.attendanceService.GetToday(r.Context(), userID)
	if err != nil {
		slog.Error("GetToday service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// List implements AttendanceHandler. Admin-only full ledger view.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAll(r.Context())
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// ListByUser implements AttendanceHandler. Users may read their own history;
// reading someone else's requires the admin role.
func (h *attendanceHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	claims := middleware.ClaimsFromContext(r.Context())
	callerID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if callerID != userID && role != string(user.RoleAdmin) {
		response.HandleError(w, user.ErrAdminPrivilegeRequired)
		return
	}

	records, err := h.attendanceService.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("ListByUser attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}
