package leave

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Employee
	ApplyLeave(ctx context.Context, session user.Session, req ApplyLeaveRequest) (LeaveResponse, error)
	ListMyLeave(ctx context.Context, session user.Session) ([]LeaveResponse, error)

	// Admin
	ListLeave(ctx context.Context, session user.Session, status *Status) ([]LeaveResponse, error)
	ApproveLeave(ctx context.Context, session user.Session, id string) (LeaveResponse, error)
	RejectLeave(ctx context.Context, session user.Session, id string) (LeaveResponse, error)
}
