// Package mongodb implements the repository contracts on MongoDB collections.
// Documents use the application-generated UUIDv7 as _id and Decimal128 for money.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionEmployees    = "employees"
	collectionCompensation = "compensation"
	collectionPayrollRuns  = "payroll_runs"
	collectionPayrollItems = "payroll_items"
	collectionLeave        = "leave_records"
	collectionUsers        = "users"
	collectionSystemLogs   = "system_logs"
)

var indexes = map[string][]mongo.IndexModel{
	collectionEmployees: {
		{
			Keys:    bson.D{{Key: "email_lower", Value: 1}},
			Options: options.Index().SetName("uniq_email_lower").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_status_name"),
		},
	},
	collectionPayrollRuns: {
		{
			Keys:    bson.D{{Key: "run_timestamp", Value: -1}},
			Options: options.Index().SetName("idx_run_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "run_timestamp", Value: 1}},
			Options: options.Index().SetName("idx_status_run_timestamp"),
		},
	},
	collectionPayrollItems: {
		{
			Keys:    bson.D{{Key: "payroll_run_id", Value: 1}},
			Options: options.Index().SetName("idx_payroll_run_id"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_employee_id_created_at"),
		},
	},
	collectionLeave: {
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "start_date", Value: -1}},
			Options: options.Index().SetName("idx_employee_id_start_date"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	},
	collectionUsers: {
		{
			Keys:    bson.D{{Key: "email_lower", Value: 1}},
			Options: options.Index().SetName("uniq_email_lower").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("uniq_employee_id").SetUnique(true).
				SetPartialFilterExpression(bson.M{"employee_id": bson.M{"$type": "string"}}),
		},
	},
	collectionSystemLogs: {
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
	},
}

// EnsureIndexes creates the indexes every repository relies on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// toDecimal128 converts an exact decimal; values beyond 34 digits are rounded to 10 places.
func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		v, _ = primitive.ParseDecimal128(d.Round(10).String())
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toNullDecimal128(d *decimal.Decimal) *primitive.Decimal128 {
	if d == nil {
		return nil
	}
	v := toDecimal128(*d)
	return &v
}

func fromNullDecimal128(v *primitive.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := fromDecimal128(*v)
	return &d
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// decodeAll drains the cursor into docs, mapping each with fn.
func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, fn func(D) T) ([]T, error) {
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, fn(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}
	return out, nil
}
