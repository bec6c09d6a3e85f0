package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	EmailLower   string     `bson:"email_lower"`
	PasswordHash *string    `bson:"password_hash"`
	Role         string     `bson:"role"`
	EmployeeID   *string    `bson:"employee_id"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
	LastLogin    *time.Time `bson:"last_login"`
}

func (d userDocument) toEntity() user.User {
	u := user.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         user.Role(d.Role),
		EmployeeID:   d.EmployeeID,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.LastLogin != nil {
		at := d.LastLogin.UTC()
		u.LastLogin = &at
	}
	return u
}

type userRepositoryImpl struct {
	coll *mongo.Collection
}

func NewUserRepository(db *database.MongoDB) user.UserRepository {
	return &userRepositoryImpl{coll: db.Collection(collectionUsers)}
}

func (r *userRepositoryImpl) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toEntity(), nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, bson.M{"email_lower": lower(email)})
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID})
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if newUser.ID == "" {
		newUser.ID = database.NewID()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := userDocument{
		ID:           newUser.ID,
		Email:        newUser.Email,
		EmailLower:   lower(newUser.Email),
		PasswordHash: newUser.PasswordHash,
		Role:         string(newUser.Role),
		EmployeeID:   newUser.EmployeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *userRepositoryImpl) updateOne(ctx context.Context, userID string, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.updateOne(ctx, userID, bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Truncate(time.Millisecond),
	})
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.updateOne(ctx, userID, bson.M{"last_login": at})
}

// DeleteByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Count implements user.UserRepository.
func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}
