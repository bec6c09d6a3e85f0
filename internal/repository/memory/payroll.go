package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

type payrollRepositoryImpl struct {
	mu    sync.RWMutex
	runs  map[string]payroll.Run
	items map[string]payroll.Item
}

func NewPayrollRepository() payroll.PayrollRepository {
	return &payrollRepositoryImpl{
		runs:  make(map[string]payroll.Run),
		items: make(map[string]payroll.Item),
	}
}

func cloneRun(r payroll.Run) payroll.Run {
	r.EmployeeIDs = cloneStrings(r.EmployeeIDs)
	r.FailedEmployeeIDs = cloneStrings(r.FailedEmployeeIDs)
	return r
}

func (r *payrollRepositoryImpl) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = newID()
	}
	if run.RunTimestamp.IsZero() {
		run.RunTimestamp = now()
	}
	r.runs[run.ID] = cloneRun(run)
	return cloneRun(run), nil
}

func (r *payrollRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrPayrollRunNotFound
	}
	return cloneRun(run), nil
}

func (r *payrollRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]payroll.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payroll.Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, cloneRun(run))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RunTimestamp.Equal(out[j].RunTimestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].RunTimestamp.After(out[j].RunTimestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *payrollRepositoryImpl) FinalizeRun(ctx context.Context, id string, f payroll.Finalization) (payroll.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrPayrollRunNotFound
	}
	if run.Status != payroll.RunStatusPending {
		return payroll.Run{}, payroll.ErrPayrollRunNotPending
	}

	completedAt := f.CompletedAt
	run.TotalNetAmount = f.TotalNetAmount
	run.Status = f.Status
	run.FailedEmployeeIDs = cloneStrings(f.FailedEmployeeIDs)
	run.CompletedAt = &completedAt
	r.runs[id] = run
	return cloneRun(run), nil
}

func (r *payrollRepositoryImpl) CountRunsByStatus(ctx context.Context, status payroll.RunStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, run := range r.runs {
		if run.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *payrollRepositoryImpl) ListPendingRunsBefore(ctx context.Context, before time.Time) ([]payroll.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []payroll.Run
	for _, run := range r.runs {
		if run.Status == payroll.RunStatusPending && run.RunTimestamp.Before(before) {
			out = append(out, cloneRun(run))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunTimestamp.Before(out[j].RunTimestamp) })
	return out, nil
}

func (r *payrollRepositoryImpl) CreateItem(ctx context.Context, item payroll.Item) (payroll.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[item.PayrollRunID]; !ok {
		return payroll.Item{}, payroll.ErrPayrollRunNotFound
	}
	if item.ID == "" {
		item.ID = newID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now()
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *payrollRepositoryImpl) ListItemsByRun(ctx context.Context, runID string) ([]payroll.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []payroll.Item
	for _, item := range r.items {
		if item.PayrollRunID == runID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *payrollRepositoryImpl) ListItemsByEmployee(ctx context.Context, employeeID string) ([]payroll.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []payroll.Item
	for _, item := range r.items {
		if item.EmployeeID != employeeID {
			continue
		}
		if run, ok := r.runs[item.PayrollRunID]; ok {
			start, end := run.PayPeriodStart, run.PayPeriodEnd
			item.PayPeriodStart = &start
			item.PayPeriodEnd = &end
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
