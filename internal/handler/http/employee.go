package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// ListEmployees implements EmployeeHandler. Filters: status, department, q.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := employee.EmployeeFilter{Search: query.Get("q")}
	if s := query.Get("status"); s != "" {
		status := employee.Status(s)
		filter.Status = &status
	}
	if d := query.Get("department"); d != "" {
		department := employee.Department(d)
		filter.Department = &department
	}

	result, err := h.employeeService.ListEmployees(r.Context(), session, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, len(result), 0)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), session, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), session, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
