package auditlog

import "context"

type AuditLogRepository interface {
	Append(ctx context.Context, entry Entry) (Entry, error)
	// List returns the newest entries first.
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}
