package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/tokenstore"
	auditLogService "github.com/cmlabs-hris/payroll-backend-go/internal/service/auditlog"
	serviceAuth "github.com/cmlabs-hris/payroll-backend-go/internal/service/auth"
	compensationService "github.com/cmlabs-hris/payroll-backend-go/internal/service/compensation"
	dashboardService "github.com/cmlabs-hris/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/payroll-backend-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/payroll-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	tokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		return err
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.IsProduction(), tokens)

	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	auditSvc := auditLogService.NewAuditLogService(st.auditLogs)
	authSvc := serviceAuth.NewAuthService(st.users, JWTService, tokens, emailService, auditSvc, cfg.App.FrontendURL)
	employeeSvc := employeeService.NewEmployeeService(st.transactor, st.employees, st.compensation, authSvc, emailService, auditSvc, cfg.App.FrontendURL)
	compensationSvc := compensationService.NewCompensationService(st.compensation, st.employees, auditSvc)
	payrollSvc := payrollService.NewPayrollService(st.payroll, st.employees, st.compensation, auditSvc, cfg.Payroll.Workers)
	leaveSvc := leaveService.NewLeaveService(st.leave, st.employees, auditSvc)
	dashboardSvc := dashboardService.NewDashboardService(st.employees, st.payroll, st.leave)
	reportSvc := reportService.NewReportService(st.compensation, st.payroll, st.leave)

	if err := bootstrapAdmin(ctx, cfg, authSvc); err != nil {
		return err
	}

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL, cfg.App.IsProduction()),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Compensation: appHTTP.NewCompensationHandler(compensationSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		AuditLog:     appHTTP.NewAuditLogHandler(auditSvc),
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
	}, JWTService, handlers)

	scheduler := cron.NewScheduler(ctx)
	scheduler.AddJob(cron.StalePayrollRunJob(payrollSvc, cfg.Payroll.StaleRunAfter, cfg.Payroll.StaleCheckInterval))
	if sweeper, ok := tokens.(cron.Sweeper); ok {
		scheduler.AddJob(cron.TokenSweepJob(sweeper, 10*time.Minute))
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func openTokenStore(ctx context.Context, cfg *config.Config) (tokenstore.Store, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("Using in-memory token store")
		return tokenstore.NewMemoryStore(), nil
	}

	client, err := database.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Connected to Redis", "addr", cfg.Redis.Addr)
	return tokenstore.NewRedisStore(client, "payroll"), nil
}

// bootstrapAdmin provisions the first administrator. An existing account is left as is.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, authSvc auth.AuthService) error {
	if cfg.Bootstrap.AdminEmail == "" {
		return nil
	}

	_, err := authSvc.CreateIdentity(ctx, auth.CreateIdentityRequest{
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Role:     user.RoleAdmin,
	})
	switch {
	case err == nil:
		slog.Info("Bootstrap admin created", "email", cfg.Bootstrap.AdminEmail)
	case errors.Is(err, user.ErrUserEmailExists):
		slog.Debug("Bootstrap admin already exists", "email", cfg.Bootstrap.AdminEmail)
	default:
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return nil
}
