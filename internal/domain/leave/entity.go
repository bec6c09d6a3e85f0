package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypePersonal  Type = "personal"
	TypeMaternity Type = "maternity"
	TypeUnpaid    Type = "unpaid"
)

var Types = []string{
	string(TypeAnnual),
	string(TypeSick),
	string(TypePersonal),
	string(TypeMaternity),
	string(TypeUnpaid),
}

type Record struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
}

// Days counts calendar days, both ends inclusive.
func (r *Record) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Review moves a pending record to approved or rejected.
func (r *Record) Review(to Status, reviewer string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrLeaveAlreadyProcessed
	}
	if to != StatusApproved && to != StatusRejected {
		return ErrInvalidStatus
	}
	r.Status = to
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &at
	return nil
}
