package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, reason, status, reviewed_by, reviewed_at, created_at`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row pgx.Row) (leave.Record, error) {
	var rec leave.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.LeaveType,
		&rec.StartDate,
		&rec.EndDate,
		&rec.Reason,
		&rec.Status,
		&rec.ReviewedBy,
		&rec.ReviewedAt,
		&rec.CreatedAt,
	)
	return rec, err
}

func (r *leaveRepositoryImpl) queryLeave(ctx context.Context, query string, args ...interface{}) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	records := []leave.Record{}
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, record leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = database.NewID()
	}

	query := `
		INSERT INTO leave_records (id, employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.LeaveType,
		record.StartDate,
		record.EndDate,
		record.Reason,
		record.Status,
	))
	if err != nil {
		return leave.Record{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Record{}, leave.ErrLeaveNotFound
		}
		return leave.Record{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return rec, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Record, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_records WHERE employee_id = $1 ORDER BY start_date DESC, id DESC`
	return r.queryLeave(ctx, query, employeeID)
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, status *leave.Status) ([]leave.Record, error) {
	if status == nil {
		return r.queryLeave(ctx, `SELECT `+leaveColumns+` FROM leave_records ORDER BY start_date DESC, id DESC`)
	}
	query := `SELECT ` + leaveColumns + ` FROM leave_records WHERE status = $1 ORDER BY start_date DESC, id DESC`
	return r.queryLeave(ctx, query, *status)
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedBy string, reviewedAt time.Time) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_records
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING ` + leaveColumns

	rec, err := scanLeave(q.QueryRow(ctx, query, status, reviewedBy, reviewedAt, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.Record{}, getErr
			}
			return leave.Record{}, leave.ErrLeaveAlreadyProcessed
		}
		return leave.Record{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	return rec, nil
}

// CountByStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountByStatus(ctx context.Context, status leave.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_records WHERE status = $1`, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count leave records: %w", err)
	}
	return total, nil
}
