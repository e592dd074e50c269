package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-testhelpers"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

type stubBilling struct {
	active models.ActiveFlatMap
	err    error
	calls  int
}

func (s *stubBilling) FetchActiveFlats(context.Context) (models.ActiveFlatMap, error) {
	s.calls++
	return s.active, s.err
}

func newProgressService(f *fixture, billing ActiveFlatSource) *ProgressService {
	svc := NewProgressService(f.store, models.DefaultTopology(), models.DefaultCatalog(), billing)
	svc.isHoliday = func(time.Time) bool { return false }
	return svc
}

func TestDailyBillingFailureCountsLeniently(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"))
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 9, 1, "Z"))

	billing := &stubBilling{err: errors.New("sheet unreachable")}
	p := newProgressService(f, billing).Daily(context.Background())
	require.Equal(t, 1, billing.calls)
	require.False(t, p.ActiveFlatsLoaded)
	require.Equal(t, 2, p.TotalCompleted)
	require.Equal(t, "2024-03-15", p.Date)
	require.False(t, p.Holiday)
}

func TestDailyGatesOnActiveFlats(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"))
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 1, "B"))

	billing := &stubBilling{active: models.ActiveFlatMap{"1A1": true}}
	p := newProgressService(f, billing).Daily(context.Background())
	require.True(t, p.ActiveFlatsLoaded)
	require.Equal(t, 1, p.TotalCompleted)
	require.Equal(t, 1, p.Categories[models.TaskCategoryRoutine].Total)
	require.LessOrEqual(t, p.TotalCompleted, p.TotalExpected)
}

func TestNavigationIgnoresBillingAndStatus(t *testing.T) {
	f := newFixture(t)
	pending := completed(models.TaskTypeRoutineHousekeeping, 2, 3, "B")
	pending.Status = models.TaskLogStatusPending
	f.store.PrependTaskLog(pending)
	f.store.PrependTaskLog(completed(models.TaskTypeGlassEntrance, 2, 0, ""))
	f.store.PrependTaskLog(completed(models.TaskTypeDrivewayBroom, 0, 0, ""))

	svc := newProgressService(f, &stubBilling{active: models.ActiveFlatMap{"1A1": true}})
	nav := svc.Navigation()
	require.Len(t, nav.Blocks, 6)

	block2 := nav.Blocks[1]
	require.Equal(t, 2, block2.Block)
	// 12 floors x (4 flats + 3 floor tasks)
	require.Equal(t, 84, block2.Completion.Total)
	require.Equal(t, 1, block2.Completion.Done)
	require.Len(t, block2.BlockTasks, 1)
	require.True(t, block2.BlockTasks[0].Done)
	require.False(t, nav.Blocks[0].BlockTasks[0].Done)

	require.Len(t, nav.CommonTasks, 1)
	require.True(t, nav.CommonTasks[0].Done)
}

func TestFloorsAndFloorTasks(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 9, "C"))
	f.store.PrependTaskLog(completed(models.TaskTypeMopping, 1, 9, ""))

	svc := newProgressService(f, &stubBilling{active: models.ActiveFlatMap{"1C9": true}})
	floors, err := svc.Floors(1)
	require.NoError(t, err)
	require.Len(t, floors.Floors, 12)
	require.Len(t, floors.Floors[0].Flats, 6)
	ninth := floors.Floors[8]
	require.Equal(t, 9, ninth.Floor)
	require.Equal(t, []string{"A", "B", "C"}, ninth.Flats)
	require.Equal(t, 2, ninth.Completion.Done)
	require.Equal(t, 6, ninth.Completion.Total)
	require.Equal(t, 33, ninth.Percent)

	tasks, err := svc.FloorTasks(context.Background(), 1, 9)
	require.NoError(t, err)
	require.Len(t, tasks.Flats, 3)
	require.False(t, tasks.Flats[0].Active)
	require.True(t, tasks.Flats[2].Active)
	require.True(t, tasks.Flats[2].Tasks[0].Done)
	require.False(t, tasks.Flats[0].Tasks[0].Done)
	require.Len(t, tasks.FloorTasks, 3)
	require.False(t, tasks.FloorTasks[0].Done)
	require.True(t, tasks.FloorTasks[1].Done)
}

func TestUnknownLocationIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newProgressService(f, nil)

	var appErr *utils.AppError
	_, err := svc.Floors(7)
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)

	_, err = svc.FloorTasks(context.Background(), 1, 13)
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestDueCatalogDropsWeeklyTasksOffDay(t *testing.T) {
	f := newFixture(t)
	svc := newProgressService(f, nil)
	friday := time.Friday
	svc.catalog.Definitions = append(svc.catalog.Definitions, models.TaskDefinition{
		TypeID: "terrace", Scope: models.TaskScopeCommon, Category: models.TaskCategoryOther,
		Frequency: models.TaskFrequencyWeekly, Weekday: &friday,
	})

	require.Len(t, svc.DueCatalog(f.clock.Now()).Definitions, 7)
	require.Len(t, svc.DueCatalog(f.clock.Now().AddDate(0, 0, 1)).Definitions, 6)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.store.PrependPunchLog(punch(models.PunchTypeIn, testhelpers.At(9, 0)))
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"))
	f.store.PrependSupplyRequest(models.SupplyRequest{
		ID: "sr-1", Item: "Phenyl", Quantity: "2 L", Urgency: models.SupplyUrgencyMedium,
		Status: models.SupplyStatusOpen, RequesterID: 1, Timestamp: f.ms(9, 30),
	})
	f.store.PrependSupplyRequest(models.SupplyRequest{
		ID: "sr-2", Status: models.SupplyStatusFulfilled, RequesterID: 2, Timestamp: f.ms(9, 40),
	})
	f.store.PrependSupplyRequest(models.SupplyRequest{
		ID: "local-abc", Status: models.SupplyStatusOpen, RequesterID: 42, Timestamp: f.ms(9, 50), LocalOnly: true,
	})

	dash := NewDashboardService(f.store, newProgressService(f, nil)).Dashboard(context.Background())
	require.Equal(t, 2, dash.StaffTotal)
	require.Len(t, dash.OnDuty, 1)
	require.Equal(t, "Rina", dash.OnDuty[0].Staff.Name)
	require.Equal(t, 1, dash.OnDuty[0].CompletedToday)
	require.Equal(t, 1, dash.OnDuty[0].Worked.Hours)

	require.Len(t, dash.OpenRequests, 2)
	require.Equal(t, "Unknown", dash.OpenRequests[0].RequesterName)
	require.Equal(t, "Rina", dash.OpenRequests[1].RequesterName)
	require.Equal(t, 30, dash.OpenRequests[1].MinutesAgo)
	require.Equal(t, 1, dash.PendingUploads)
	require.Equal(t, 1, dash.Progress.TotalCompleted)
}
