package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/domain/leave"
)

type leaveRequestRepository struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func NewLeaveRequestRepository() leave.LeaveRequestRepository {
	return &leaveRequestRepository{requests: make(map[string]leave.LeaveRequest)}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	r.requests[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepository) Resolve(ctx context.Context, id string, status leave.LeaveRequestStatus, resolvedBy string, resolvedAt time.Time) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status.IsTerminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	req.Status = status
	req.ResolvedBy = &resolvedBy
	req.ResolvedAt = &resolvedAt
	r.requests[id] = req
	return req, nil
}

func (r *leaveRequestRepository) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(lr leave.LeaveRequest) bool { return lr.Status == leave.LeaveRequestStatusPending }), nil
}

func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(lr leave.LeaveRequest) bool { return lr.UserID == userID }), nil
}

func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(leave.LeaveRequest) bool { return true }), nil
}

func (r *leaveRequestRepository) collect(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	out := make([]leave.LeaveRequest, 0, len(r.requests))
	for _, lr := range r.requests {
		if keep(lr) {
			out = append(out, lr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
