package testhelpers

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/jackc/pgconn"
)

// ErrRemoteDown is returned by fakes whose Fail flag is set.
var ErrRemoteDown = errors.New("remote unavailable")

// FakeTaskLogRepo is an in-memory repositories.TaskLogRepository.
type FakeTaskLogRepo struct {
	mu      sync.Mutex
	Logs    []*models.TaskLog
	Fail    bool
	nextID  int
	Creates int
}

var _ repositories.TaskLogRepository = (*FakeTaskLogRepo)(nil)

func (f *FakeTaskLogRepo) Create(_ context.Context, l *models.TaskLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Creates++
	if f.Fail {
		return ErrRemoteDown
	}
	f.nextID++
	l.ID = "tl-" + strconv.Itoa(f.nextID)
	cp := *l
	cp.LocalOnly = false
	f.Logs = append(f.Logs, &cp)
	return nil
}

func (f *FakeTaskLogRepo) ListSince(_ context.Context, since int64) ([]*models.TaskLog, error) {
	return f.filter(func(l *models.TaskLog) bool { return l.Timestamp >= since })
}

func (f *FakeTaskLogRepo) ListByStaffSince(_ context.Context, staffID int64, since int64) ([]*models.TaskLog, error) {
	return f.filter(func(l *models.TaskLog) bool { return l.StaffID == staffID && l.Timestamp >= since })
}

func (f *FakeTaskLogRepo) filter(keep func(*models.TaskLog) bool) ([]*models.TaskLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	var out []*models.TaskLog
	for _, l := range f.Logs {
		if keep(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// FakePunchLogRepo is an in-memory repositories.PunchLogRepository.
type FakePunchLogRepo struct {
	mu     sync.Mutex
	Punches []*models.PunchLog
	Fail   bool
	nextID int
}

var _ repositories.PunchLogRepository = (*FakePunchLogRepo)(nil)

func (f *FakePunchLogRepo) Create(_ context.Context, p *models.PunchLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return ErrRemoteDown
	}
	f.nextID++
	p.ID = "pl-" + strconv.Itoa(f.nextID)
	cp := *p
	cp.LocalOnly = false
	f.Punches = append(f.Punches, &cp)
	return nil
}

func (f *FakePunchLogRepo) ListSince(_ context.Context, since int64) ([]*models.PunchLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	var out []*models.PunchLog
	for _, p := range f.Punches {
		if p.Timestamp >= since {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// FakeSupplyRequestRepo is an in-memory repositories.SupplyRequestRepository
// with row-version semantics.
type FakeSupplyRequestRepo struct {
	mu         sync.Mutex
	Requests   []*models.SupplyRequest
	Fail       bool
	FailUpdate bool
	nextID     int
}

var _ repositories.SupplyRequestRepository = (*FakeSupplyRequestRepo)(nil)

func (f *FakeSupplyRequestRepo) Create(_ context.Context, s *models.SupplyRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return ErrRemoteDown
	}
	f.nextID++
	s.ID = "sr-" + strconv.Itoa(f.nextID)
	s.RowVersion = 1
	cp := *s
	cp.LocalOnly = false
	f.Requests = append(f.Requests, &cp)
	return nil
}

func (f *FakeSupplyRequestRepo) GetByID(_ context.Context, id string) (*models.SupplyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	for _, s := range f.Requests {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeSupplyRequestRepo) ListRecent(_ context.Context, limit int) ([]*models.SupplyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	out := make([]*models.SupplyRequest, 0, len(f.Requests))
	for _, s := range f.Requests {
		cp := *s
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeSupplyRequestRepo) UpdateIfVersion(_ context.Context, s *models.SupplyRequest, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail || f.FailUpdate {
		return nil, ErrRemoteDown
	}
	for _, cur := range f.Requests {
		if cur.ID == s.ID && cur.RowVersion == expected {
			cur.Status = s.Status
			cur.RowVersion++
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (f *FakeSupplyRequestRepo) UpdateWithRetry(ctx context.Context, id string, mutate func(*models.SupplyRequest) error) error {
	return repositories.WithRetry(ctx, 3, id, f.GetByID, f.UpdateIfVersion, mutate)
}

// Status returns the stored status of id, or "" when absent.
func (f *FakeSupplyRequestRepo) Status(id string) models.SupplyStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.Requests {
		if s.ID == id {
			return s.Status
		}
	}
	return ""
}

// FakeStaffRepo is an in-memory repositories.StaffMemberRepository.
type FakeStaffRepo struct {
	mu    sync.Mutex
	Staff []*models.StaffMember
	Fail  bool
}

var _ repositories.StaffMemberRepository = (*FakeStaffRepo)(nil)

func (f *FakeStaffRepo) Create(_ context.Context, s *models.StaffMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return ErrRemoteDown
	}
	var maxID int64
	for _, cur := range f.Staff {
		if cur.ID > maxID {
			maxID = cur.ID
		}
	}
	s.ID = maxID + 1
	cp := *s
	f.Staff = append(f.Staff, &cp)
	return nil
}

func (f *FakeStaffRepo) GetByID(_ context.Context, id int64) (*models.StaffMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	for _, s := range f.Staff {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeStaffRepo) List(_ context.Context) ([]*models.StaffMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, ErrRemoteDown
	}
	out := make([]*models.StaffMember, 0, len(f.Staff))
	for _, s := range f.Staff {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeStaffRepo) Count(ctx context.Context) (int, error) {
	list, err := f.List(ctx)
	return len(list), err
}
