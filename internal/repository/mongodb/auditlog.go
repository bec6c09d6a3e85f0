package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditLogDocument struct {
	ID        string    `bson:"_id"`
	Timestamp time.Time `bson:"timestamp"`
	UserID    string    `bson:"user_id"`
	Action    string    `bson:"action"`
	Details   string    `bson:"details"`
}

func (d auditLogDocument) toEntity() auditlog.Entry {
	return auditlog.Entry{
		ID:        d.ID,
		Timestamp: d.Timestamp.UTC(),
		UserID:    d.UserID,
		Action:    auditlog.Action(d.Action),
		Details:   d.Details,
	}
}

type auditLogRepositoryImpl struct {
	coll *mongo.Collection
}

func NewAuditLogRepository(db *database.MongoDB) auditlog.AuditLogRepository {
	return &auditLogRepositoryImpl{coll: db.Collection(collectionSystemLogs)}
}

// Append implements auditlog.AuditLogRepository.
func (r *auditLogRepositoryImpl) Append(ctx context.Context, entry auditlog.Entry) (auditlog.Entry, error) {
	if entry.ID == "" {
		entry.ID = database.NewID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := auditLogDocument{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		Details:   entry.Details,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return auditlog.Entry{}, fmt.Errorf("failed to append audit log: %w", err)
	}
	return entry, nil
}

// List implements auditlog.AuditLogRepository.
func (r *auditLogRepositoryImpl) List(ctx context.Context, filter auditlog.ListFilter) ([]auditlog.Entry, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Action != "" {
		query["action"] = string(filter.Action)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	return decodeAll(ctx, cur, auditLogDocument.toEntity)
}
