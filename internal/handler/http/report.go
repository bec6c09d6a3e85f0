package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetSalaryReport(w http.ResponseWriter, r *http.Request)
	GetLeaveReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetSalaryReport handles GET /api/v1/me/salary
func (h *reportHandlerImpl) GetSalaryReport(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetSalaryReport(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetLeaveReport handles GET /api/v1/me/leave
func (h *reportHandlerImpl) GetLeaveReport(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GetLeaveReport(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
