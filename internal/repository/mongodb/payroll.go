package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type runDocument struct {
	ID                string               `bson:"_id"`
	PayPeriodStart    time.Time            `bson:"pay_period_start"`
	PayPeriodEnd      time.Time            `bson:"pay_period_end"`
	RunTimestamp      time.Time            `bson:"run_timestamp"`
	Status            string               `bson:"status"`
	ProcessedBy       string               `bson:"processed_by"`
	TotalNetAmount    primitive.Decimal128 `bson:"total_net_amount"`
	EmployeeIDs       []string             `bson:"employee_ids"`
	FailedEmployeeIDs []string             `bson:"failed_employee_ids"`
	CompletedAt       *time.Time           `bson:"completed_at"`
}

func (d runDocument) toEntity() payroll.Run {
	run := payroll.Run{
		ID:                d.ID,
		PayPeriodStart:    d.PayPeriodStart.UTC(),
		PayPeriodEnd:      d.PayPeriodEnd.UTC(),
		RunTimestamp:      d.RunTimestamp.UTC(),
		Status:            payroll.RunStatus(d.Status),
		ProcessedBy:       d.ProcessedBy,
		TotalNetAmount:    fromDecimal128(d.TotalNetAmount),
		EmployeeIDs:       nonNil(d.EmployeeIDs),
		FailedEmployeeIDs: nonNil(d.FailedEmployeeIDs),
	}
	if d.CompletedAt != nil {
		at := d.CompletedAt.UTC()
		run.CompletedAt = &at
	}
	return run
}

type itemDocument struct {
	ID            string               `bson:"_id"`
	PayrollRunID  string               `bson:"payroll_run_id"`
	EmployeeID    string               `bson:"employee_id"`
	GrossPay      primitive.Decimal128 `bson:"gross_pay"`
	Deductions    primitive.Decimal128 `bson:"deductions"`
	NetPay        primitive.Decimal128 `bson:"net_pay"`
	PaymentStatus string               `bson:"payment_status"`
	CreatedAt     time.Time            `bson:"created_at"`

	// Populated by the $lookup in ListItemsByEmployee
	Run *runDocument `bson:"run,omitempty"`
}

func (d itemDocument) toEntity() payroll.Item {
	item := payroll.Item{
		ID:            d.ID,
		PayrollRunID:  d.PayrollRunID,
		EmployeeID:    d.EmployeeID,
		GrossPay:      fromDecimal128(d.GrossPay),
		Deductions:    fromDecimal128(d.Deductions),
		NetPay:        fromDecimal128(d.NetPay),
		PaymentStatus: payroll.PaymentStatus(d.PaymentStatus),
		CreatedAt:     d.CreatedAt.UTC(),
	}
	if d.Run != nil {
		start := d.Run.PayPeriodStart.UTC()
		end := d.Run.PayPeriodEnd.UTC()
		item.PayPeriodStart = &start
		item.PayPeriodEnd = &end
	}
	return item
}

type payrollRepositoryImpl struct {
	runs  *mongo.Collection
	items *mongo.Collection
}

func NewPayrollRepository(db *database.MongoDB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{
		runs:  db.Collection(collectionPayrollRuns),
		items: db.Collection(collectionPayrollItems),
	}
}

// ========== RUNS ==========

func (r *payrollRepositoryImpl) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	if run.ID == "" {
		run.ID = database.NewID()
	}
	if run.RunTimestamp.IsZero() {
		run.RunTimestamp = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := runDocument{
		ID:                run.ID,
		PayPeriodStart:    run.PayPeriodStart,
		PayPeriodEnd:      run.PayPeriodEnd,
		RunTimestamp:      run.RunTimestamp,
		Status:            string(run.Status),
		ProcessedBy:       run.ProcessedBy,
		TotalNetAmount:    toDecimal128(run.TotalNetAmount),
		EmployeeIDs:       nonNil(run.EmployeeIDs),
		FailedEmployeeIDs: nonNil(run.FailedEmployeeIDs),
	}
	if _, err := r.runs.InsertOne(ctx, doc); err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *payrollRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	var doc runDocument
	if err := r.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return payroll.Run{}, payroll.ErrPayrollRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *payrollRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]payroll.Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "run_timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll runs: %w", err)
	}
	return decodeAll(ctx, cur, runDocument.toEntity)
}

func (r *payrollRepositoryImpl) FinalizeRun(ctx context.Context, id string, f payroll.Finalization) (payroll.Run, error) {
	update := bson.M{"$set": bson.M{
		"total_net_amount":    toDecimal128(f.TotalNetAmount),
		"status":              string(f.Status),
		"failed_employee_ids": nonNil(f.FailedEmployeeIDs),
		"completed_at":        f.CompletedAt,
	}}
	filter := bson.M{"_id": id, "status": string(payroll.RunStatusPending)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc runDocument
	if err := r.runs.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			if _, getErr := r.GetRunByID(ctx, id); getErr != nil {
				return payroll.Run{}, getErr
			}
			return payroll.Run{}, payroll.ErrPayrollRunNotPending
		}
		return payroll.Run{}, fmt.Errorf("failed to finalize payroll run: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *payrollRepositoryImpl) CountRunsByStatus(ctx context.Context, status payroll.RunStatus) (int64, error) {
	total, err := r.runs.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}
	return total, nil
}

func (r *payrollRepositoryImpl) ListPendingRunsBefore(ctx context.Context, before time.Time) ([]payroll.Run, error) {
	filter := bson.M{
		"status":        string(payroll.RunStatusPending),
		"run_timestamp": bson.M{"$lt": before},
	}
	opts := options.Find().SetSort(bson.D{{Key: "run_timestamp", Value: 1}})

	cur, err := r.runs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payroll runs: %w", err)
	}
	return decodeAll(ctx, cur, runDocument.toEntity)
}

// ========== ITEMS ==========

func (r *payrollRepositoryImpl) CreateItem(ctx context.Context, item payroll.Item) (payroll.Item, error) {
	if item.ID == "" {
		item.ID = database.NewID()
	}
	item.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	doc := itemDocument{
		ID:            item.ID,
		PayrollRunID:  item.PayrollRunID,
		EmployeeID:    item.EmployeeID,
		GrossPay:      toDecimal128(item.GrossPay),
		Deductions:    toDecimal128(item.Deductions),
		NetPay:        toDecimal128(item.NetPay),
		PaymentStatus: string(item.PaymentStatus),
		CreatedAt:     item.CreatedAt,
	}
	if _, err := r.items.InsertOne(ctx, doc); err != nil {
		return payroll.Item{}, fmt.Errorf("failed to create payroll item for employee %s: %w", item.EmployeeID, err)
	}
	return doc.toEntity(), nil
}

func (r *payrollRepositoryImpl) ListItemsByRun(ctx context.Context, runID string) ([]payroll.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}})

	cur, err := r.items.Find(ctx, bson.M{"payroll_run_id": runID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items: %w", err)
	}
	return decodeAll(ctx, cur, itemDocument.toEntity)
}

func (r *payrollRepositoryImpl) ListItemsByEmployee(ctx context.Context, employeeID string) ([]payroll.Item, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"employee_id": employeeID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionPayrollRuns,
			"localField":   "payroll_run_id",
			"foreignField": "_id",
			"as":           "run",
		}}},
		{{Key: "$unwind", Value: "$run"}},
	}

	cur, err := r.items.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items by employee: %w", err)
	}
	return decodeAll(ctx, cur, itemDocument.toEntity)
}
