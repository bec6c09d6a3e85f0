package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup holds the connection used by the repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// It returns nil, nil when the variable is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, 4, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes every row from the schema tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"system_logs",
		"users",
		"leave_records",
		"payroll_items",
		"payroll_runs",
		"compensation",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
