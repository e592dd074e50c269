package services

import (
	"context"
	"testing"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/stretchr/testify/require"
)

func TestRefreshLoadsWindowMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	f.tasks.Logs = []*models.TaskLog{
		{ID: "old", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.clock.Current.AddDate(0, 0, -30).UnixMilli()},
		{ID: "a", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(8, 0)},
		{ID: "b", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(9, 0)},
	}
	f.store.Refresh(context.Background())

	logs := f.store.TaskLogs()
	require.Len(t, logs, 2)
	require.Equal(t, "b", logs[0].ID)
	require.Equal(t, "a", logs[1].ID)

	staff := f.store.Staff()
	require.Len(t, staff, 2)
	require.Equal(t, int64(1), staff[0].ID)
	require.Equal(t, f.clock.Current, f.store.RefreshedAt())
}

func TestRefreshFailureIsEmptyButKeepsLocalRecords(t *testing.T) {
	f := newFixture(t)
	f.tasks.Logs = []*models.TaskLog{{ID: "remote", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(8, 0)}}
	f.store.Refresh(context.Background())
	require.Len(t, f.store.TaskLogs(), 1)

	f.store.PrependTaskLog(models.TaskLog{ID: "local-1", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(9, 0), LocalOnly: true})

	f.tasks.Fail = true
	f.staff.Fail = true
	f.store.Refresh(context.Background())

	logs := f.store.TaskLogs()
	require.Len(t, logs, 1)
	require.Equal(t, "local-1", logs[0].ID)
	require.Empty(t, f.store.Staff())
}

func TestRefreshReappliesPendingStatus(t *testing.T) {
	f := newFixture(t)
	f.supply.Requests = []*models.SupplyRequest{{ID: "sr-9", Item: "Phenyl", Status: models.SupplyStatusOpen, Timestamp: f.ms(8, 0)}}
	f.store.MarkStatusPending("sr-9", models.SupplyStatusFulfilled)

	f.store.Refresh(context.Background())

	r, ok := f.store.SupplyRequest("sr-9")
	require.True(t, ok)
	require.Equal(t, models.SupplyStatusFulfilled, r.Status)
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(models.TaskLog{ID: "x", TaskID: "t"})

	logs := f.store.TaskLogs()
	logs[0].ID = "mutated"
	require.Equal(t, "x", f.store.TaskLogs()[0].ID)
}

func TestAddStaffKeepsIDOrder(t *testing.T) {
	f := newFixture(t)
	f.store.AddStaff(models.StaffMember{ID: 0, Name: "Zero"})
	f.store.AddStaff(models.StaffMember{ID: 5, Name: "Five"})

	var ids []int64
	for _, m := range f.store.Staff() {
		ids = append(ids, m.ID)
	}
	require.Equal(t, []int64{0, 1, 2, 5}, ids)
}

func TestNewLocalIDIsUnused(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := f.store.NewLocalID()
		require.False(t, seen[id])
		require.False(t, f.store.HasID(id))
		seen[id] = true
		f.store.PrependPunchLog(models.PunchLog{ID: id})
		require.True(t, f.store.HasID(id))
	}
}

func TestReplaceDropsFetchedCopyOfCanonical(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(models.TaskLog{ID: "local-1", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(9, 0), LocalOnly: true})
	f.store.PrependTaskLog(models.TaskLog{ID: "tl-1", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(9, 0)})

	canonical := models.TaskLog{ID: "tl-1", TaskID: models.TaskTypeDrivewayBroom, Timestamp: f.ms(9, 0)}
	require.True(t, f.store.ReplaceTaskLog("local-1", canonical))
	require.Equal(t, []models.TaskLog{canonical}, f.store.TaskLogs())

	require.False(t, f.store.ReplaceTaskLog("local-404", canonical))
	require.Len(t, f.store.TaskLogs(), 1)
}

func TestReplaceSupplyRequestAndPunchDedupe(t *testing.T) {
	f := newFixture(t)
	f.store.PrependSupplyRequest(models.SupplyRequest{ID: "sr-1", Status: models.SupplyStatusOpen})
	f.store.PrependSupplyRequest(models.SupplyRequest{ID: "local-2", Status: models.SupplyStatusOpen, LocalOnly: true})
	require.True(t, f.store.ReplaceSupplyRequest("local-2", models.SupplyRequest{ID: "sr-1", Status: models.SupplyStatusOpen}))
	require.Len(t, f.store.SupplyRequests(), 1)

	f.store.PrependPunchLog(models.PunchLog{ID: "pl-1", StaffID: 1, Type: models.PunchTypeIn, Timestamp: f.ms(8, 0)})
	f.store.PrependPunchLog(models.PunchLog{ID: "local-3", StaffID: 1, Type: models.PunchTypeIn, Timestamp: f.ms(8, 0), LocalOnly: true})
	require.True(t, f.store.ReplacePunchLog("local-3", models.PunchLog{ID: "pl-1", StaffID: 1, Type: models.PunchTypeIn, Timestamp: f.ms(8, 0)}))
	punches := f.store.PunchLogs()
	require.Len(t, punches, 1)
	require.False(t, punches[0].LocalOnly)
}
