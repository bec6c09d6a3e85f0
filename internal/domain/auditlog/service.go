package auditlog

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type AuditLogService interface {
	// Record appends an entry. Failures are logged and never returned to the caller.
	Record(ctx context.Context, userID string, action Action, details string)
	List(ctx context.Context, session user.Session, filter ListFilter) ([]EntryResponse, error)
}
