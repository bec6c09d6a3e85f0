package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepositoryImpl{employees: make(map[string]employee.Employee)}
}

func (r *employeeRepositoryImpl) emailTaken(email, exceptID string) bool {
	for id, e := range r.employees {
		if id != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(newEmployee.Email, "") {
		return employee.Employee{}, employee.ErrEmailExists
	}

	if newEmployee.ID == "" {
		newEmployee.ID = newID()
	}
	ts := now()
	newEmployee.CreatedAt = ts
	newEmployee.UpdatedAt = ts
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sortByName(out)
	return out, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	status := employee.StatusActive
	return r.List(ctx, employee.EmployeeFilter{Status: &status})
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.employees[updated.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if r.emailTaken(updated.Email, updated.ID) {
		return employee.Employee{}, employee.ErrEmailExists
	}

	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now()
	r.employees[updated.ID] = updated
	return updated, nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.employees)), nil
}

func (r *employeeRepositoryImpl) CountByStatus(ctx context.Context, status employee.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, e := range r.employees {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func sortByName(employees []employee.Employee) {
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name == employees[j].Name {
			return employees[i].ID < employees[j].ID
		}
		return employees[i].Name < employees[j].Name
	})
}
