package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
	Count(ctx context.Context) (int64, error)
}
