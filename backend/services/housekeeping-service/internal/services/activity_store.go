package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

// ActivityStore is the in-memory working set of staff, task logs, punches and
// supply requests. Log collections are kept most-recent-first. Accessors
// return copies.
type ActivityStore struct {
	staffRepo  repositories.StaffMemberRepository
	taskRepo   repositories.TaskLogRepository
	punchRepo  repositories.PunchLogRepository
	supplyRepo repositories.SupplyRequestRepository
	loc        *time.Location
	now        func() time.Time

	// syncMu serialises Refresh with reconcile passes.
	syncMu sync.Mutex

	mu             sync.RWMutex
	staff          []models.StaffMember
	taskLogs       []models.TaskLog
	punchLogs      []models.PunchLog
	supplyRequests []models.SupplyRequest
	pendingStatus  map[string]models.SupplyStatus
	refreshedAt    time.Time
}

func NewActivityStore(
	staffRepo repositories.StaffMemberRepository,
	taskRepo repositories.TaskLogRepository,
	punchRepo repositories.PunchLogRepository,
	supplyRepo repositories.SupplyRequestRepository,
	loc *time.Location,
	now func() time.Time,
) *ActivityStore {
	if now == nil {
		now = time.Now
	}
	return &ActivityStore{
		staffRepo:     staffRepo,
		taskRepo:      taskRepo,
		punchRepo:     punchRepo,
		supplyRepo:    supplyRepo,
		loc:           loc,
		now:           now,
		pendingStatus: map[string]models.SupplyStatus{},
	}
}

func (s *ActivityStore) Location() *time.Location { return s.loc }

func (s *ActivityStore) Now() time.Time { return s.now() }

// Today returns the bounds of the current society-local day.
func (s *ActivityStore) Today() (time.Time, time.Time) {
	return DayBounds(s.now(), s.loc)
}

// Refresh reloads all four collections from the persistence backend in
// parallel. A collection whose fetch fails is treated as empty. Local-only
// records and unconfirmed status changes survive the refresh.
func (s *ActivityStore) Refresh(ctx context.Context) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.RemoteFetchTimeout)
	defer cancel()

	todayStart, _ := s.Today()
	since := todayStart.AddDate(0, 0, -(constants.StoreWindowDays - 1)).UnixMilli()

	var (
		wg       sync.WaitGroup
		staff    []*models.StaffMember
		tasks    []*models.TaskLog
		punches  []*models.PunchLog
		supplies []*models.SupplyRequest
	)
	fetch := func(name string, fn func() error) {
		defer wg.Done()
		if err := fn(); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to fetch %s; treating as empty", name)
		}
	}

	wg.Add(4)
	go fetch("staff", func() (err error) { staff, err = s.staffRepo.List(ctx); return })
	go fetch("task logs", func() (err error) { tasks, err = s.taskRepo.ListSince(ctx, since); return })
	go fetch("punch logs", func() (err error) { punches, err = s.punchRepo.ListSince(ctx, since); return })
	go fetch("supply requests", func() (err error) {
		supplies, err = s.supplyRepo.ListRecent(ctx, constants.SupplyRequestListLimit)
		return
	})
	wg.Wait()

	s.replace(derefStaff(staff), derefTaskLogs(tasks), derefPunchLogs(punches), derefSupplyRequests(supplies))
}

func (s *ActivityStore) replace(
	staff []models.StaffMember,
	tasks []models.TaskLog,
	punches []models.PunchLog,
	supplies []models.SupplyRequest,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.taskLogs {
		if l.LocalOnly {
			tasks = append(tasks, l)
		}
	}
	for _, p := range s.punchLogs {
		if p.LocalOnly {
			punches = append(punches, p)
		}
	}
	for _, r := range s.supplyRequests {
		if r.LocalOnly {
			supplies = append(supplies, r)
		}
	}
	for i := range supplies {
		if st, ok := s.pendingStatus[supplies[i].ID]; ok {
			supplies[i].Status = st
		}
	}

	sort.SliceStable(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Timestamp > tasks[j].Timestamp })
	sort.SliceStable(punches, func(i, j int) bool { return punches[i].Timestamp > punches[j].Timestamp })
	sort.SliceStable(supplies, func(i, j int) bool { return supplies[i].Timestamp > supplies[j].Timestamp })

	s.staff = staff
	s.taskLogs = tasks
	s.punchLogs = punches
	s.supplyRequests = supplies
	s.refreshedAt = s.now()
}

// holdSync blocks refreshes until the returned func is called.
func (s *ActivityStore) holdSync() func() {
	s.syncMu.Lock()
	return s.syncMu.Unlock
}

// replaceByID swaps the element with id for canonical and drops any other
// element already carrying canonical's id.
func replaceByID[T any](items []T, id string, canonical T, idOf func(T) string) ([]T, bool) {
	at := -1
	for i := range items {
		if idOf(items[i]) == id {
			at = i
			break
		}
	}
	if at < 0 {
		return items, false
	}

	want := idOf(canonical)
	out := make([]T, 0, len(items))
	for i, it := range items {
		switch {
		case i == at:
			out = append(out, canonical)
		case idOf(it) == want:
			// stale copy of canonical
		default:
			out = append(out, it)
		}
	}
	return out, true
}

func (s *ActivityStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// ----- staff -----

func (s *ActivityStore) Staff() []models.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StaffMember(nil), s.staff...)
}

func (s *ActivityStore) StaffByID(id int64) (models.StaffMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.staff {
		if m.ID == id {
			return m, true
		}
	}
	return models.StaffMember{}, false
}

// AddStaff inserts m keeping ascending id order.
func (s *ActivityStore) AddStaff(m models.StaffMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := sort.Search(len(s.staff), func(i int) bool { return s.staff[i].ID >= m.ID })
	s.staff = append(s.staff, models.StaffMember{})
	copy(s.staff[i+1:], s.staff[i:])
	s.staff[i] = m
}

// ----- task logs -----

func (s *ActivityStore) TaskLogs() []models.TaskLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TaskLog(nil), s.taskLogs...)
}

// TaskLogsBetween returns logs with start <= timestamp < end.
func (s *ActivityStore) TaskLogsBetween(start, end time.Time) []models.TaskLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTaskLogs(s.taskLogs, start, end)
}

func (s *ActivityStore) PrependTaskLog(l models.TaskLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskLogs = append([]models.TaskLog{l}, s.taskLogs...)
}

// ReplaceTaskLog swaps the record with id for canonical, in place. A copy of
// canonical fetched in the meantime is dropped.
func (s *ActivityStore) ReplaceTaskLog(id string, canonical models.TaskLog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.taskLogs, ok = replaceByID(s.taskLogs, id, canonical, func(l models.TaskLog) string { return l.ID })
	return ok
}

func (s *ActivityStore) LocalTaskLogs() []models.TaskLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TaskLog
	for _, l := range s.taskLogs {
		if l.LocalOnly {
			out = append(out, l)
		}
	}
	return out
}

// ----- punches -----

func (s *ActivityStore) PunchLogs() []models.PunchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PunchLog(nil), s.punchLogs...)
}

// PunchesFor returns staffID's punches with start <= timestamp < end.
func (s *ActivityStore) PunchesFor(staffID int64, start, end time.Time) []models.PunchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterPunches(s.punchLogs, staffID, start, end)
}

func (s *ActivityStore) PrependPunchLog(p models.PunchLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.punchLogs = append([]models.PunchLog{p}, s.punchLogs...)
}

func (s *ActivityStore) ReplacePunchLog(id string, canonical models.PunchLog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.punchLogs, ok = replaceByID(s.punchLogs, id, canonical, func(p models.PunchLog) string { return p.ID })
	return ok
}

func (s *ActivityStore) LocalPunchLogs() []models.PunchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PunchLog
	for _, p := range s.punchLogs {
		if p.LocalOnly {
			out = append(out, p)
		}
	}
	return out
}

// ----- supply requests -----

func (s *ActivityStore) SupplyRequests() []models.SupplyRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SupplyRequest(nil), s.supplyRequests...)
}

func (s *ActivityStore) SupplyRequest(id string) (models.SupplyRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.supplyRequests {
		if r.ID == id {
			return r, true
		}
	}
	return models.SupplyRequest{}, false
}

func (s *ActivityStore) PrependSupplyRequest(r models.SupplyRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplyRequests = append([]models.SupplyRequest{r}, s.supplyRequests...)
}

// ReplaceSupplyRequest swaps the record with id for canonical.
func (s *ActivityStore) ReplaceSupplyRequest(id string, canonical models.SupplyRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.supplyRequests, ok = replaceByID(
		s.supplyRequests, id, canonical, func(r models.SupplyRequest) string { return r.ID },
	)
	return ok
}

// SetSupplyStatus updates the in-memory status of id.
func (s *ActivityStore) SetSupplyStatus(id string, status models.SupplyStatus) (models.SupplyRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.supplyRequests {
		if s.supplyRequests[i].ID == id {
			s.supplyRequests[i].Status = status
			return s.supplyRequests[i], true
		}
	}
	return models.SupplyRequest{}, false
}

func (s *ActivityStore) LocalSupplyRequests() []models.SupplyRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SupplyRequest
	for _, r := range s.supplyRequests {
		if r.LocalOnly {
			out = append(out, r)
		}
	}
	return out
}

// MarkStatusPending records a status change the backend has not confirmed.
func (s *ActivityStore) MarkStatusPending(id string, status models.SupplyStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingStatus[id] = status
}

// ClearStatusPending drops the pending entry for id if it still holds status.
func (s *ActivityStore) ClearStatusPending(id string, status models.SupplyStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingStatus[id] == status {
		delete(s.pendingStatus, id)
	}
}

// DropStatusPending forgets any pending status change for id.
func (s *ActivityStore) DropStatusPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingStatus, id)
}

func (s *ActivityStore) PendingStatusUpdates() map[string]models.SupplyStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.SupplyStatus, len(s.pendingStatus))
	for k, v := range s.pendingStatus {
		out[k] = v
	}
	return out
}

// ----- ids -----

// HasID reports whether any record in any collection uses id.
func (s *ActivityStore) HasID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.taskLogs {
		if l.ID == id {
			return true
		}
	}
	for _, p := range s.punchLogs {
		if p.ID == id {
			return true
		}
	}
	for _, r := range s.supplyRequests {
		if r.ID == id {
			return true
		}
	}
	return false
}

// NewLocalID returns a local identifier unused by any stored record.
func (s *ActivityStore) NewLocalID() string {
	for {
		id := utils.NewLocalID()
		if !s.HasID(id) {
			return id
		}
	}
}
