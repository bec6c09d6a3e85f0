package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

// store bundles the repositories of the configured driver
type store struct {
	transactor   database.Transactor
	users        user.UserRepository
	employees    employee.EmployeeRepository
	compensation compensation.CompensationRepository
	payroll      payroll.PayrollRepository
	leave        leave.LeaveRepository
	auditLogs    auditlog.AuditLogRepository
	close        func(ctx context.Context)
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
		slog.Info("Connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return &store{
			transactor:   postgresql.NewTransactor(db),
			users:        postgresql.NewUserRepository(db),
			employees:    postgresql.NewEmployeeRepository(db),
			compensation: postgresql.NewCompensationRepository(db),
			payroll:      postgresql.NewPayrollRepository(db),
			leave:        postgresql.NewLeaveRepository(db),
			auditLogs:    postgresql.NewAuditLogRepository(db),
			close:        func(context.Context) { db.Close() },
		}, nil

	case config.StoreDriverMongo:
		db, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("failed to create mongodb indexes: %w", err)
		}
		slog.Info("Connected to MongoDB", "database", cfg.Mongo.Database)
		return &store{
			transactor:   database.NewNoopTransactor(),
			users:        mongodb.NewUserRepository(db),
			employees:    mongodb.NewEmployeeRepository(db),
			compensation: mongodb.NewCompensationRepository(db),
			payroll:      mongodb.NewPayrollRepository(db),
			leave:        mongodb.NewLeaveRepository(db),
			auditLogs:    mongodb.NewAuditLogRepository(db),
			close: func(ctx context.Context) {
				if err := db.Close(ctx); err != nil {
					slog.Error("Failed to disconnect from MongoDB", "error", err)
				}
			},
		}, nil

	default:
		slog.Warn("Using in-memory store, data is lost on restart")
		return &store{
			transactor:   database.NewNoopTransactor(),
			users:        memory.NewUserRepository(),
			employees:    memory.NewEmployeeRepository(),
			compensation: memory.NewCompensationRepository(),
			payroll:      memory.NewPayrollRepository(),
			leave:        memory.NewLeaveRepository(),
			auditLogs:    memory.NewAuditLogRepository(),
			close:        func(context.Context) {},
		}, nil
	}
}
