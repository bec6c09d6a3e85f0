package payroll

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type PayrollService interface {
	RunPayroll(ctx context.Context, session user.Session, req RunPayrollRequest) (RunDetailResponse, error)
	ListRuns(ctx context.Context, session user.Session, limit int) ([]RunResponse, error)
	GetRun(ctx context.Context, session user.Session, id string) (RunDetailResponse, error)
	ListStalePendingRuns(ctx context.Context, olderThan time.Duration) ([]Run, error)
}
