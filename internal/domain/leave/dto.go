package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	// Parsed by Validate
	StartDateParsed time.Time `json:"-"`
	EndDateParsed   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, Types) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: " + strings.Join(Types, ", "),
		})
	}

	// Dates
	r.StartDateParsed, r.EndDateParsed = validator.DateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)

	// Reason
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParseStatus validates an optional status query value.
func ParseStatus(s string) (*Status, error) {
	if s == "" {
		return nil, nil
	}
	status := Status(s)
	if !status.Valid() {
		return nil, validator.ValidationErrors{{Field: "status", Message: ErrInvalidStatus.Error()}}
	}
	return &status, nil
}

type LeaveResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	LeaveType  string     `json:"leave_type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Days       int        `json:"days"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToResponse(r Record) LeaveResponse {
	return LeaveResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  string(r.LeaveType),
		StartDate:  r.StartDate.Format(validator.DateLayout),
		EndDate:    r.EndDate.Format(validator.DateLayout),
		Days:       r.Days(),
		Reason:     r.Reason,
		Status:     string(r.Status),
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func ToResponses(records []Record) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r))
	}
	return out
}
