package http

import (
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Compensation CompensationHandler
	Payroll      PayrollHandler
	Leave        LeaveHandler
	Dashboard    DashboardHandler
	Report       ReportHandler
	AuditLog     AuditLogHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// Bearer header only. Revocation is checked against the same header value.
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.With(middleware.RequirePermission(user.PermissionChangePassword)).
				Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/me", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewOwnDashboard)).
					Get("/dashboard", h.Dashboard.GetEmployeeDashboard)
				r.With(middleware.RequirePermission(user.PermissionSalaryViewOwn)).
					Get("/salary", h.Report.GetSalaryReport)

				r.Route("/leave", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewOwn))
					r.Get("/", h.Report.GetLeaveReport)
					r.Get("/requests", h.Leave.ListMyLeave)
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).
						Post("/", h.Leave.ApplyLeave)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// Employees may read their own record and compensation
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Get("/{id}/compensation", h.Compensation.GetCompensation)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
					r.Put("/{id}/compensation", h.Compensation.SetCompensation)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/dashboard", h.Dashboard.GetAdminStats)

				r.Get("/compensation", h.Compensation.ListCompensation)

				r.Route("/payroll/runs", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollRun)).
						Post("/", h.Payroll.RunPayroll)
					r.Get("/", h.Payroll.ListRuns)
					r.Get("/{id}", h.Payroll.GetRun)
				})

				r.Route("/leave", func(r chi.Router) {
					r.Get("/", h.Leave.ListLeave)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).
						Post("/{id}/approve", h.Leave.ApproveLeave)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).
						Post("/{id}/reject", h.Leave.RejectLeave)
				})

				r.With(middleware.RequirePermission(user.PermissionAuditLogsView)).
					Get("/audit-logs", h.AuditLog.List)
			})
		})
	})

	return r
}
