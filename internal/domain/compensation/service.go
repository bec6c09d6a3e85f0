package compensation

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type CompensationService interface {
	SetCompensation(ctx context.Context, session user.Session, employeeID string, req SetCompensationRequest) (CompensationResponse, error)
	GetCompensation(ctx context.Context, session user.Session, employeeID string) (CompensationResponse, error)
	// ListCompensation joins every employee with its compensation. Missing records show as zero rows.
	ListCompensation(ctx context.Context, session user.Session) ([]CompensationRow, error)
}
