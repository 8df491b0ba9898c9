package attendance

import (
	"time"

	"github.com/ems-hq/ems-backend-go/internal/pkg/validator"
)

type CheckRequest struct {
	UserID string `json:"user_id"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	UserName *string `json:"user_name,omitempty"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   string  `json:"status"`
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		UserName: a.UserName,
		Date:     a.Date.Format("2006-01-02"),
		CheckIn:  timePtrToString(a.CheckIn),
		CheckOut: timePtrToString(a.CheckOut),
		Status:   string(a.DerivedStatus()),
	}
}

// AbsentResponse is the well-defined sentinel returned when a user has no
// record for the day, mirroring the shape of a real record.
func AbsentResponse(userID string, date time.Time) AttendanceResponse {
	return AttendanceResponse{
		UserID:   userID,
		Date:     date.Format("2006-01-02"),
		CheckIn:  nil,
		CheckOut: nil,
		Status:   string(StatusAbsent),
	}
}
