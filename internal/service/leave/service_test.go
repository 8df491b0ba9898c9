package leave

import (
	"context"
	"testing"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/ems-hq/ems-backend-go/internal/pkg/validator"
	"github.com/ems-hq/ems-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submitTime = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (leave.LeaveService, user.User, user.User) {
	t.Helper()
	users := memory.NewUserRepository()

	employee, err := users.Create(context.Background(), user.User{
		ID:         uuid.NewString(),
		Name:       "John Doe",
		Email:      "john@example.com",
		Role:       user.RoleEmployee,
		Department: "Engineering",
	})
	require.NoError(t, err)

	admin, err := users.Create(context.Background(), user.User{
		ID:         uuid.NewString(),
		Name:       "Admin User",
		Email:      "admin@example.com",
		Role:       user.RoleAdmin,
		Department: "Management",
	})
	require.NoError(t, err)

	svc := NewLeaveService(memory.NewLeaveRequestRepository(), users, clock.Fixed(submitTime))
	return svc, employee, admin
}

func submit(t *testing.T, svc leave.LeaveService, userID string) leave.LeaveResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		UserID:    userID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
		Reason:    "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit(t *testing.T) {
	svc, employee, _ := newTestService(t)

	resp := submit(t, svc, employee.ID)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2026-03-10", resp.StartDate)
	assert.Equal(t, "2026-03-12", resp.EndDate)
	assert.Equal(t, string(leave.LeaveRequestStatusPending), resp.Status)
	assert.Nil(t, resp.ResolvedBy)
}

func TestSubmit_InvalidRequest(t *testing.T) {
	svc, employee, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		UserID:    employee.ID,
		StartDate: "not-a-date",
		EndDate:   "also-not-a-date",
		Reason:    "",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "reason")

	requests, err := svc.ListByUser(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestSubmit_EndBeforeStart(t *testing.T) {
	svc, employee, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		UserID:    employee.ID,
		StartDate: "2026-03-12",
		EndDate:   "2026-03-10",
		Reason:    "family trip",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "end_date")
}

func TestSubmit_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		UserID:    uuid.NewString(),
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
		Reason:    "family trip",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSubmit_OverlapAllowed(t *testing.T) {
	svc, employee, _ := newTestService(t)

	submit(t, svc, employee.ID)
	submit(t, svc, employee.ID)

	mine, err := svc.ListByUser(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestApprove(t *testing.T) {
	svc, employee, admin := newTestService(t)
	req := submit(t, svc, employee.ID)

	resp, err := svc.Approve(context.Background(), req.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusApproved), resp.Status)
	require.NotNil(t, resp.ResolvedBy)
	assert.Equal(t, admin.ID, *resp.ResolvedBy)
	assert.NotNil(t, resp.ResolvedAt)
}

func TestReject(t *testing.T) {
	svc, employee, admin := newTestService(t)
	req := submit(t, svc, employee.ID)

	resp, err := svc.Reject(context.Background(), req.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.LeaveRequestStatusRejected), resp.Status)
}

func TestResolve_Twice(t *testing.T) {
	svc, employee, admin := newTestService(t)
	req := submit(t, svc, employee.ID)

	_, err := svc.Approve(context.Background(), req.ID, admin.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), req.ID, admin.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestResolve_NotFound(t *testing.T) {
	svc, _, admin := newTestService(t)

	_, err := svc.Approve(context.Background(), uuid.NewString(), admin.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestListPending_ExcludesResolved(t *testing.T) {
	svc, employee, admin := newTestService(t)
	first := submit(t, svc, employee.ID)
	submit(t, svc, employee.ID)

	_, err := svc.Approve(context.Background(), first.ID, admin.ID)
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.NotEqual(t, first.ID, pending[0].ID)
}
