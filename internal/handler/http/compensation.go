package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompensationHandler interface {
	ListCompensation(w http.ResponseWriter, r *http.Request)
	GetCompensation(w http.ResponseWriter, r *http.Request)
	SetCompensation(w http.ResponseWriter, r *http.Request)
}

type compensationHandlerImpl struct {
	compensationService compensation.CompensationService
}

func NewCompensationHandler(compensationService compensation.CompensationService) CompensationHandler {
	return &compensationHandlerImpl{compensationService: compensationService}
}

func (h *compensationHandlerImpl) ListCompensation(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	rows, err := h.compensationService.ListCompensation(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, rows, len(rows), 0)
}

func (h *compensationHandlerImpl) GetCompensation(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.compensationService.GetCompensation(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *compensationHandlerImpl) SetCompensation(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req compensation.SetCompensationRequest
	if !decodeJSON(w, r, "SetCompensation", &req) {
		return
	}

	result, err := h.compensationService.SetCompensation(r.Context(), session, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Compensation updated successfully", result)
}
