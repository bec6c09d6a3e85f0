package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type leaveDocument struct {
	ID         string     `bson:"_id"`
	EmployeeID string     `bson:"employee_id"`
	LeaveType  string     `bson:"leave_type"`
	StartDate  time.Time  `bson:"start_date"`
	EndDate    time.Time  `bson:"end_date"`
	Reason     string     `bson:"reason"`
	Status     string     `bson:"status"`
	ReviewedBy *string    `bson:"reviewed_by"`
	ReviewedAt *time.Time `bson:"reviewed_at"`
	CreatedAt  time.Time  `bson:"created_at"`
}

func (d leaveDocument) toEntity() leave.Record {
	rec := leave.Record{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		LeaveType:  leave.Type(d.LeaveType),
		StartDate:  d.StartDate.UTC(),
		EndDate:    d.EndDate.UTC(),
		Reason:     d.Reason,
		Status:     leave.Status(d.Status),
		ReviewedBy: d.ReviewedBy,
		CreatedAt:  d.CreatedAt.UTC(),
	}
	if d.ReviewedAt != nil {
		at := d.ReviewedAt.UTC()
		rec.ReviewedAt = &at
	}
	return rec
}

var leaveSort = options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: -1}})

type leaveRepositoryImpl struct {
	coll *mongo.Collection
}

func NewLeaveRepository(db *database.MongoDB) leave.LeaveRepository {
	return &leaveRepositoryImpl{coll: db.Collection(collectionLeave)}
}

func (r *leaveRepositoryImpl) find(ctx context.Context, filter bson.M) ([]leave.Record, error) {
	cur, err := r.coll.Find(ctx, filter, leaveSort)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave records: %w", err)
	}
	return decodeAll(ctx, cur, leaveDocument.toEntity)
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, record leave.Record) (leave.Record, error) {
	if record.ID == "" {
		record.ID = database.NewID()
	}
	record.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	doc := leaveDocument{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		LeaveType:  string(record.LeaveType),
		StartDate:  record.StartDate,
		EndDate:    record.EndDate,
		Reason:     record.Reason,
		Status:     string(record.Status),
		CreatedAt:  record.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return leave.Record{}, fmt.Errorf("failed to create leave record: %w", err)
	}
	return doc.toEntity(), nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Record, error) {
	var doc leaveDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return leave.Record{}, leave.ErrLeaveNotFound
		}
		return leave.Record{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return doc.toEntity(), nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Record, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID})
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, status *leave.Status) ([]leave.Record, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = string(*status)
	}
	return r.find(ctx, filter)
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedBy string, reviewedAt time.Time) (leave.Record, error) {
	filter := bson.M{"_id": id, "status": string(leave.StatusPending)}
	update := bson.M{"$set": bson.M{
		"status":      string(status),
		"reviewed_by": reviewedBy,
		"reviewed_at": reviewedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc leaveDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.Record{}, getErr
			}
			return leave.Record{}, leave.ErrLeaveAlreadyProcessed
		}
		return leave.Record{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	return doc.toEntity(), nil
}

// CountByStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountByStatus(ctx context.Context, status leave.Status) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("failed to count leave records: %w", err)
	}
	return total, nil
}
