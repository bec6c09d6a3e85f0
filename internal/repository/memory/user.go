package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type userRepositoryImpl struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() user.UserRepository {
	return &userRepositoryImpl{users: make(map[string]user.User)}
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = newID()
	}
	ts := now()
	newUser.CreatedAt = ts
	newUser.UpdatedAt = ts
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	u.UpdatedAt = now()
	r.users[userID] = u
	return nil
}

func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLogin = &at
	r.users[userID] = u
	return nil
}

func (r *userRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			delete(r.users, id)
			return nil
		}
	}
	return user.ErrUserNotFound
}

func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
