package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Review(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("pending to approved", func(t *testing.T) {
		r := Record{Status: StatusPending}
		require.NoError(t, r.Review(StatusApproved, "admin-1", at))
		assert.Equal(t, StatusApproved, r.Status)
		assert.Equal(t, "admin-1", *r.ReviewedBy)
		assert.Equal(t, at, *r.ReviewedAt)
	})

	t.Run("already processed", func(t *testing.T) {
		r := Record{Status: StatusRejected}
		assert.ErrorIs(t, r.Review(StatusApproved, "admin-1", at), ErrLeaveAlreadyProcessed)
	})

	t.Run("cannot review back to pending", func(t *testing.T) {
		r := Record{Status: StatusPending}
		assert.ErrorIs(t, r.Review(StatusPending, "admin-1", at), ErrInvalidStatus)
	})
}

func TestRecord_Days(t *testing.T) {
	r := Record{
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 5, r.Days())

	r.EndDate = r.StartDate
	assert.Equal(t, 1, r.Days())
}

func TestApplyLeaveRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ApplyLeaveRequest
		wantErr bool
	}{
		{"valid", ApplyLeaveRequest{LeaveType: "annual", StartDate: "2024-03-01", EndDate: "2024-03-05"}, false},
		{"single day", ApplyLeaveRequest{LeaveType: "sick", StartDate: "2024-03-01", EndDate: "2024-03-01"}, false},
		{"missing type", ApplyLeaveRequest{StartDate: "2024-03-01", EndDate: "2024-03-05"}, true},
		{"unknown type", ApplyLeaveRequest{LeaveType: "vacation", StartDate: "2024-03-01", EndDate: "2024-03-05"}, true},
		{"end before start", ApplyLeaveRequest{LeaveType: "annual", StartDate: "2024-03-05", EndDate: "2024-03-01"}, true},
		{"missing dates", ApplyLeaveRequest{LeaveType: "annual"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("")
	assert.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, *s)

	_, err = ParseStatus("cancelled")
	assert.Error(t, err)
}
