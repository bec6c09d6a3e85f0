package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) auditlog.AuditLogRepository {
	return &auditLogRepositoryImpl{db: db}
}

// Append implements auditlog.AuditLogRepository.
func (r *auditLogRepositoryImpl) Append(ctx context.Context, entry auditlog.Entry) (auditlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = database.NewID()
	}

	query := `
		INSERT INTO system_logs (id, user_id, action, details)
		VALUES ($1, $2, $3, $4)
		RETURNING timestamp`

	if err := q.QueryRow(ctx, query, entry.ID, entry.UserID, entry.Action, entry.Details).Scan(&entry.Timestamp); err != nil {
		return auditlog.Entry{}, fmt.Errorf("failed to append audit log: %w", err)
	}
	return entry, nil
}

// List implements auditlog.AuditLogRepository.
func (r *auditLogRepositoryImpl) List(ctx context.Context, filter auditlog.ListFilter) ([]auditlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, filter.Action)
		argIdx++
	}

	query := `SELECT id, timestamp, user_id, action, details FROM system_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, id DESC LIMIT $%d", argIdx)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	entries := []auditlog.Entry{}
	for rows.Next() {
		var e auditlog.Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.UserID, &e.Action, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}
