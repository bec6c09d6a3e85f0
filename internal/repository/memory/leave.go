package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
)

type leaveRepositoryImpl struct {
	mu      sync.RWMutex
	records map[string]leave.Record
}

func NewLeaveRepository() leave.LeaveRepository {
	return &leaveRepositoryImpl{records: make(map[string]leave.Record)}
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, record leave.Record) (leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = newID()
	}
	record.CreatedAt = now()
	r.records[record.ID] = record
	return record, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return leave.Record{}, leave.ErrLeaveNotFound
	}
	return rec, nil
}

func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Record, error) {
	return r.filter(func(rec leave.Record) bool { return rec.EmployeeID == employeeID }), nil
}

func (r *leaveRepositoryImpl) List(ctx context.Context, status *leave.Status) ([]leave.Record, error) {
	return r.filter(func(rec leave.Record) bool { return status == nil || rec.Status == *status }), nil
}

func (r *leaveRepositoryImpl) filter(keep func(leave.Record) bool) []leave.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []leave.Record{}
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, reviewedBy string, reviewedAt time.Time) (leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return leave.Record{}, leave.ErrLeaveNotFound
	}
	if err := rec.Review(status, reviewedBy, reviewedAt); err != nil {
		return leave.Record{}, err
	}
	r.records[id] = rec
	return rec, nil
}

func (r *leaveRepositoryImpl) CountByStatus(ctx context.Context, status leave.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, rec := range r.records {
		if rec.Status == status {
			n++
		}
	}
	return n, nil
}
