package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/middleware"
	"github.com/ems-hq/ems-backend-go/internal/handler/http/response"
	"github.com/ems-hq/ems-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if !validator.IsValidUUID(requestID) {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}
	resolvedBy := middleware.UserIDFromContext(r.Context())

	resolved, err := h.leaveService.Approve(r.Context(), requestID, resolvedBy)
	if err != nil {
		slog.Error("Approve leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", resolved)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if !validator.IsValidUUID(requestID) {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}
	resolvedBy := middleware.UserIDFromContext(r.Context())

	resolved, err := h.leaveService.Reject(r.Context(), requestID, resolvedBy)
	if err != nil {
		slog.Error("Reject leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", resolved)
}

// ListPending implements LeaveHandler. Admin approval queue, oldest first.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		slog.Error("ListPending leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, pending)
}

// ListByUser implements LeaveHandler. Users may read their own requests;
// reading someone else's requires the admin role.
func (h *leaveHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	claims := middleware.ClaimsFromContext(r.Context())
	callerID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if callerID != userID && role != string(user.RoleAdmin) {
		response.HandleError(w, user.ErrAdminPrivilegeRequired)
		return
	}

	requests, err := h.leaveService.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("ListByUser leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}
