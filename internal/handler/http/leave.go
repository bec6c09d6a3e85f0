package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Employee
	ApplyLeave(w http.ResponseWriter, r *http.Request)
	ListMyLeave(w http.ResponseWriter, r *http.Request)

	// Admin
	ListLeave(w http.ResponseWriter, r *http.Request)
	ApproveLeave(w http.ResponseWriter, r *http.Request)
	RejectLeave(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if !decodeJSON(w, r, "ApplyLeave", &req) {
		return
	}

	result, err := h.leaveService.ApplyLeave(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

func (h *leaveHandlerImpl) ListMyLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.ListMyLeave(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	status, err := leave.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ListLeave(r.Context(), session, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, len(result), 0)
}

func (h *leaveHandlerImpl) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.ApproveLeave(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

func (h *leaveHandlerImpl) RejectLeave(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.RejectLeave(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}
