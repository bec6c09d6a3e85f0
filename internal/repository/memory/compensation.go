package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
)

type compensationRepositoryImpl struct {
	mu      sync.RWMutex
	records map[string]compensation.Compensation
}

func NewCompensationRepository() compensation.CompensationRepository {
	return &compensationRepositoryImpl{records: make(map[string]compensation.Compensation)}
}

func (r *compensationRepositoryImpl) Get(ctx context.Context, employeeID string) (compensation.Compensation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.records[employeeID]
	if !ok {
		return compensation.Compensation{}, compensation.ErrCompensationNotFound
	}
	return c, nil
}

func (r *compensationRepositoryImpl) Upsert(ctx context.Context, employeeID string, patch compensation.Patch, at time.Time) (compensation.Compensation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.records[employeeID]
	if !ok {
		c = compensation.New(employeeID, at)
	}
	c.Merge(patch, at)
	r.records[employeeID] = c
	return c, nil
}

func (r *compensationRepositoryImpl) List(ctx context.Context) ([]compensation.Compensation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]compensation.Compensation, 0, len(r.records))
	for _, c := range r.records {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *compensationRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, employeeID)
	return nil
}
