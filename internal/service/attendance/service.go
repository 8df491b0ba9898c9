package attendance

import (
	"context"
	"fmt"

	"github.com/ems-hq/ems-backend-go/internal/domain/attendance"
	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/ems-hq/ems-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepository user.UserRepository
	clock          clock.Clock
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, userRepository user.UserRepository, clk clock.Clock) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		userRepository:       userRepository,
		clock:                clk,
	}
}

// CheckIn implements attendance.AttendanceService. The (user, day) uniqueness
// is enforced by the repository's conditional insert, so racing check-ins
// produce exactly one record.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	if _, err := s.userRepository.GetByID(ctx, req.UserID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := clock.Day(now)

	created, err := s.CreateIfAbsent(ctx, attendance.Attendance{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		Date:    today,
		CheckIn: &now,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	if _, err := s.userRepository.GetByID(ctx, req.UserID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	closed, err := s.CloseOpen(ctx, req.UserID, clock.Day(now), now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(closed), nil
}

// GetToday implements attendance.AttendanceService. A day with no record
// yields the absent sentinel rather than an error.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	today := clock.Day(s.clock.Now())

	record, err := s.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AbsentResponse(userID, today), nil
	}
	return attendance.ToResponse(*record), nil
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// ListByUser implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByUser(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for user: %w", err)
	}
	return toResponses(records), nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}
	return responses
}
