package auditlog

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type ListFilter struct {
	UserID string
	Action Action
	Limit  int
}

// ParseListFilter reads user_id, action and limit query values.
func ParseListFilter(userID, action, limit string) (ListFilter, error) {
	var errs validator.ValidationErrors
	filter := ListFilter{UserID: userID, Action: Action(action), Limit: DefaultListLimit}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > MaxListLimit {
			errs.Add("limit", "limit must be a number between 1 and 500")
		} else {
			filter.Limit = n
		}
	}

	return filter, errs.Err()
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		UserID:    e.UserID,
		Action:    e.Action,
		Details:   e.Details,
	}
}
