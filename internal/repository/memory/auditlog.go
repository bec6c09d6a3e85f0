package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
)

type auditLogRepositoryImpl struct {
	mu      sync.RWMutex
	entries []auditlog.Entry
}

func NewAuditLogRepository() auditlog.AuditLogRepository {
	return &auditLogRepositoryImpl{}
}

func (r *auditLogRepositoryImpl) Append(ctx context.Context, entry auditlog.Entry) (auditlog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now()
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *auditLogRepositoryImpl) List(ctx context.Context, filter auditlog.ListFilter) ([]auditlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []auditlog.Entry{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
