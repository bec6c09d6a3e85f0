package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeDocument struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	EmailLower string    `bson:"email_lower"`
	Phone      string    `bson:"phone"`
	Department string    `bson:"department"`
	Position   string    `bson:"position"`
	HireDate   time.Time `bson:"hire_date"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func newEmployeeDocument(e employee.Employee) employeeDocument {
	return employeeDocument{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		EmailLower: lower(e.Email),
		Phone:      e.Phone,
		Department: string(e.Department),
		Position:   e.Position,
		HireDate:   e.HireDate,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (d employeeDocument) toEntity() employee.Employee {
	return employee.Employee{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Department: employee.Department(d.Department),
		Position:   d.Position,
		HireDate:   d.HireDate.UTC(),
		Status:     employee.Status(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type employeeRepositoryImpl struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *database.MongoDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{coll: db.Collection(collectionEmployees)}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if newEmployee.ID == "" {
		newEmployee.ID = database.NewID()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, newEmployeeDocument(newEmployee)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var doc employeeDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *employeeRepositoryImpl) find(ctx context.Context, filter bson.M) ([]employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	return decodeAll(ctx, cur, employeeDocument.toEntity)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Department != nil {
		query["department"] = string(*filter.Department)
	}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return r.find(ctx, query)
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.find(ctx, bson.M{"status": string(employee.StatusActive)})
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) (employee.Employee, error) {
	set := bson.M{
		"name":        updated.Name,
		"email":       updated.Email,
		"email_lower": lower(updated.Email),
		"phone":       updated.Phone,
		"department":  string(updated.Department),
		"position":    updated.Position,
		"hire_date":   updated.HireDate,
		"status":      string(updated.Status),
		"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc employeeDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": updated.ID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return doc.toEntity(), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

// CountByStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByStatus(ctx context.Context, status employee.Status) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}
