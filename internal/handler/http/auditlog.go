package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type AuditLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditLogHandlerImpl struct {
	auditLogService auditlog.AuditLogService
}

func NewAuditLogHandler(auditLogService auditlog.AuditLogService) AuditLogHandler {
	return &auditLogHandlerImpl{auditLogService: auditLogService}
}

// List handles GET /api/v1/audit-logs?user_id=&action=&limit=
func (h *auditLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter, err := auditlog.ParseListFilter(query.Get("user_id"), query.Get("action"), query.Get("limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.auditLogService.List(r.Context(), session, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, entries, len(entries), filter.Limit)
}
