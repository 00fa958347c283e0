package correction

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
)

// memStore backs the in-memory repositories for these tests. failBreakCreate
// injects a failure into the approval's break re-creation step so the
// rollback path is observable.
type memStore struct {
	nextID          int
	days            map[string]attendance.AttendanceDay
	breaks          map[string]attendance.BreakInterval
	requests        map[string]correction.CorrectionRequest
	proposed        map[string][]correction.ProposedBreakInterval
	failBreakCreate error
}

func newMemStore() *memStore {
	return &memStore{
		days:     make(map[string]attendance.AttendanceDay),
		breaks:   make(map[string]attendance.BreakInterval),
		requests: make(map[string]correction.CorrectionRequest),
		proposed: make(map[string][]correction.ProposedBreakInterval),
	}
}

func (m *memStore) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.nextID = m.nextID
	cp.failBreakCreate = m.failBreakCreate
	for k, v := range m.days {
		cp.days[k] = v
	}
	for k, v := range m.breaks {
		cp.breaks[k] = v
	}
	for k, v := range m.requests {
		cp.requests[k] = v
	}
	for k, v := range m.proposed {
		cp.proposed[k] = append([]correction.ProposedBreakInterval(nil), v...)
	}
	return cp
}

func (m *memStore) restore(snap *memStore) {
	m.nextID = snap.nextID
	m.days = snap.days
	m.breaks = snap.breaks
	m.requests = snap.requests
	m.proposed = snap.proposed
}

// memTxManager serializes units of work, matching the row-lock behavior
// the real transactions rely on.
type memTxManager struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type memDayRepository struct {
	store *memStore
}

func (r *memDayRepository) Create(_ context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	day.ID = r.store.genID("day")
	day.CreatedAt = time.Now()
	day.UpdatedAt = day.CreatedAt
	r.store.days[day.ID] = day
	return day, nil
}

func (r *memDayRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	for _, d := range r.store.days {
		if d.EmployeeID == employeeID && d.Date.Equal(date) {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDayRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	return r.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (r *memDayRepository) SetClockOut(_ context.Context, id string, clockOut time.Time) error {
	day, ok := r.store.days[id]
	if !ok {
		return attendance.ErrDayNotFound
	}
	day.ClockOut = &clockOut
	r.store.days[id] = day
	return nil
}

func (r *memDayRepository) Overwrite(_ context.Context, id string, clockIn, clockOut time.Time, note *string) error {
	day, ok := r.store.days[id]
	if !ok {
		return attendance.ErrDayNotFound
	}
	day.ClockIn = &clockIn
	day.ClockOut = &clockOut
	day.Note = note
	r.store.days[id] = day
	return nil
}

func (r *memDayRepository) ListByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range r.store.days {
		if d.EmployeeID == employeeID && d.Date.Year() == year && d.Date.Month() == month {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memDayRepository) ListByDate(_ context.Context, date time.Time) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range r.store.days {
		if d.Date.Equal(date) {
			out = append(out, d)
		}
	}
	return out, nil
}

type memBreakRepository struct {
	store *memStore
}

func (r *memBreakRepository) Create(_ context.Context, interval attendance.BreakInterval) (attendance.BreakInterval, error) {
	if r.store.failBreakCreate != nil {
		return attendance.BreakInterval{}, r.store.failBreakCreate
	}
	interval.ID = r.store.genID("break")
	r.store.breaks[interval.ID] = interval
	return interval, nil
}

func (r *memBreakRepository) Close(_ context.Context, id string, end time.Time) error {
	b, ok := r.store.breaks[id]
	if !ok {
		return attendance.ErrDayNotFound
	}
	b.End = &end
	r.store.breaks[id] = b
	return nil
}

func (r *memBreakRepository) ListByDay(_ context.Context, dayID string) ([]attendance.BreakInterval, error) {
	var out []attendance.BreakInterval
	for _, b := range r.store.breaks {
		if b.DayID == dayID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *memBreakRepository) ListByDayIDs(ctx context.Context, dayIDs []string) (map[string][]attendance.BreakInterval, error) {
	out := make(map[string][]attendance.BreakInterval, len(dayIDs))
	for _, id := range dayIDs {
		breaks, err := r.ListByDay(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(breaks) > 0 {
			out[id] = breaks
		}
	}
	return out, nil
}

func (r *memBreakRepository) DeleteByDay(_ context.Context, dayID string) error {
	for id, b := range r.store.breaks {
		if b.DayID == dayID {
			delete(r.store.breaks, id)
		}
	}
	return nil
}

type memRequestRepository struct {
	store *memStore
}

func (r *memRequestRepository) Create(_ context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	req.ID = r.store.genID("req")
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	r.store.requests[req.ID] = req
	return req, nil
}

func (r *memRequestRepository) GetByID(_ context.Context, id string) (correction.CorrectionRequest, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return correction.CorrectionRequest{}, correction.ErrRequestNotFound
	}
	return req, nil
}

func (r *memRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *memRequestRepository) HasPendingForDay(_ context.Context, dayID string) (bool, error) {
	for _, req := range r.store.requests {
		if req.DayID == dayID && req.Status == correction.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRequestRepository) List(_ context.Context, filter correction.RequestFilter) ([]correction.CorrectionRequest, error) {
	var out []correction.CorrectionRequest
	for _, req := range r.store.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRequestRepository) MarkApproved(_ context.Context, id string) error {
	req, ok := r.store.requests[id]
	if !ok || req.Status != correction.RequestStatusPending {
		return correction.ErrStaleRequest
	}
	req.Status = correction.RequestStatusApproved
	req.UpdatedAt = time.Now()
	r.store.requests[id] = req
	return nil
}

type memProposedBreakRepository struct {
	store *memStore
}

func (r *memProposedBreakRepository) CreateBatch(_ context.Context, requestID string, breaks []correction.ProposedBreakInterval) ([]correction.ProposedBreakInterval, error) {
	out := make([]correction.ProposedBreakInterval, 0, len(breaks))
	for _, b := range breaks {
		b.ID = r.store.genID("proposed")
		b.RequestID = requestID
		out = append(out, b)
	}
	r.store.proposed[requestID] = out
	return out, nil
}

func (r *memProposedBreakRepository) ListByRequest(_ context.Context, requestID string) ([]correction.ProposedBreakInterval, error) {
	return append([]correction.ProposedBreakInterval(nil), r.store.proposed[requestID]...), nil
}
