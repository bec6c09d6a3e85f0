package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	RunPayroll(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// RunPayroll implements PayrollHandler
func (h *payrollHandlerImpl) RunPayroll(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req payroll.RunPayrollRequest
	if !decodeJSON(w, r, "RunPayroll", &req) {
		return
	}

	result, err := h.payrollService.RunPayroll(r.Context(), session, req)
	if err != nil {
		slog.Error("RunPayroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := "Payroll processed successfully"
	if result.Status == payroll.RunStatusCompletedWithErrors {
		message = "Payroll processed with errors"
	}
	response.Created(w, message, result)
}

// ListRuns implements PayrollHandler
func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	limit, err := payroll.ParseListLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	runs, err := h.payrollService.ListRuns(r.Context(), session, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, runs, len(runs), limit)
}

// GetRun implements PayrollHandler
func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
