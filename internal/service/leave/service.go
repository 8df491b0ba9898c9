package leave

import (
	"context"
	"fmt"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/ems-hq/ems-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	userRepository user.UserRepository
	clock          clock.Clock
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository, clk clock.Clock) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		userRepository:         userRepository,
		clock:                  clk,
	}
}

// Submit implements leave.LeaveService. Overlapping requests for the same
// user are accepted; only the date ordering within one request is checked.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.userRepository.GetByID(ctx, req.UserID); err != nil {
		return leave.LeaveResponse{}, err
	}

	// Validate guarantees both dates parse.
	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	created, err := s.Create(ctx, leave.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    leave.LeaveRequestStatusPending,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return leave.ToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string, resolvedBy string) (leave.LeaveResponse, error) {
	return s.resolve(ctx, requestID, leave.LeaveRequestStatusApproved, resolvedBy)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, requestID string, resolvedBy string) (leave.LeaveResponse, error) {
	return s.resolve(ctx, requestID, leave.LeaveRequestStatusRejected, resolvedBy)
}

func (s *LeaveServiceImpl) resolve(ctx context.Context, requestID string, status leave.LeaveRequestStatus, resolvedBy string) (leave.LeaveResponse, error) {
	resolver, err := s.userRepository.GetByID(ctx, resolvedBy)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !resolver.CanApprove() {
		return leave.LeaveResponse{}, user.ErrAdminPrivilegeRequired
	}

	resolved, err := s.Resolve(ctx, requestID, status, resolvedBy, s.clock.Now())
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(resolved), nil
}

// ListPending implements leave.LeaveService. Requests come back oldest-first
// so the approval queue is worked in submission order.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	requests, err := s.LeaveRequestRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListByUser implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests for user: %w", err)
	}
	return toResponses(requests), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses
}
