package auditlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type AuditLogServiceImpl struct {
	auditlog.AuditLogRepository
}

func NewAuditLogService(auditLogRepository auditlog.AuditLogRepository) auditlog.AuditLogService {
	return &AuditLogServiceImpl{AuditLogRepository: auditLogRepository}
}

// Record implements auditlog.AuditLogService.
func (s *AuditLogServiceImpl) Record(ctx context.Context, userID string, action auditlog.Action, details string) {
	// The entry is written even when the request context was cancelled after the action succeeded.
	ctx = context.WithoutCancel(ctx)

	_, err := s.AuditLogRepository.Append(ctx, auditlog.Entry{
		UserID:  userID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		slog.Error("failed to record audit log",
			"user_id", userID,
			"action", action,
			"details", details,
			"error", err,
		)
	}
}

// List implements auditlog.AuditLogService.
func (s *AuditLogServiceImpl) List(ctx context.Context, session user.Session, filter auditlog.ListFilter) ([]auditlog.EntryResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 || filter.Limit > auditlog.MaxListLimit {
		filter.Limit = auditlog.DefaultListLimit
	}

	entries, err := s.AuditLogRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	responses := make([]auditlog.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, auditlog.ToResponse(e))
	}
	return responses, nil
}
