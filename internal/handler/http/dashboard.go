package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetAdminStats(w http.ResponseWriter, r *http.Request)
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetAdminStats handles GET /api/v1/dashboard
func (h *dashboardHandlerImpl) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetAdminStats(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetEmployeeDashboard handles GET /api/v1/me/dashboard
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetEmployeeDashboard(r.Context(), session)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
