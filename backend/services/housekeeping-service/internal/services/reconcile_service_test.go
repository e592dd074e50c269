package services

import (
	"context"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-testhelpers"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

func TestReconcilePushesLocalRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tasks := newTaskLogService(f, nil)
	punches := NewPunchService(f.store, f.punches, Geofence{})
	supplies := NewSupplyService(f.store, f.supply, nil)
	reconciler := NewReconcileService(f.store, f.tasks, f.punches, f.supply, nil)

	f.tasks.Fail, f.punches.Fail, f.supply.Fail = true, true, true
	localLog, err := tasks.LogTask(ctx, 1, flatRequest(1, 1, "A"))
	require.NoError(t, err)
	_, err = punches.Punch(ctx, 1, dtos.PunchRequest{})
	require.NoError(t, err)
	localReq, err := supplies.CreateRequest(ctx, 1, dtos.CreateSupplyRequest{
		Item: "Mop head", Quantity: "3", Urgency: models.SupplyUrgencyLow,
	})
	require.NoError(t, err)
	_, err = supplies.Approve(ctx, localReq.ID)
	require.NoError(t, err)

	res := reconciler.Reconcile(ctx)
	require.Equal(t, dtos.ReconcileResponse{Remaining: 3}, res, "nothing moves while the backend is down")

	f.tasks.Fail, f.punches.Fail, f.supply.Fail = false, false, false
	res = reconciler.Reconcile(ctx)
	require.Equal(t, 1, res.TaskLogs)
	require.Equal(t, 1, res.Punches)
	require.Equal(t, 1, res.SupplyRequests)
	require.Zero(t, res.Remaining)

	logs := f.store.TaskLogs()
	require.Len(t, logs, 1)
	require.False(t, logs[0].LocalOnly)
	require.False(t, utils.IsLocalID(logs[0].ID))
	require.Equal(t, localLog.Timestamp, logs[0].Timestamp)

	reqs := f.store.SupplyRequests()
	require.Len(t, reqs, 1)
	require.Equal(t, models.SupplyStatusFulfilled, reqs[0].Status)
	require.Equal(t, models.SupplyStatusFulfilled, f.supply.Status(reqs[0].ID))

	// A refresh now returns the same canonical records.
	f.store.Refresh(ctx)
	require.Len(t, f.store.TaskLogs(), 1)
	require.Len(t, f.store.PunchLogs(), 1)
	require.Len(t, f.store.SupplyRequests(), 1)
}

func TestReconcileReplaysPendingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplies := NewSupplyService(f.store, f.supply, nil)
	reconciler := NewReconcileService(f.store, f.tasks, f.punches, f.supply, nil)

	rec := openRequest(t, f, supplies)
	f.supply.FailUpdate = true
	_, err := supplies.Approve(ctx, rec.ID)
	require.NoError(t, err)

	f.supply.FailUpdate = false
	res := reconciler.Reconcile(ctx)
	require.Equal(t, 1, res.StatusUpdates)
	require.Empty(t, f.store.PendingStatusUpdates())
	require.Equal(t, models.SupplyStatusFulfilled, f.supply.Status(rec.ID))
}

func TestReconcileDropsPendingStatusForDeletedRequest(t *testing.T) {
	f := newFixture(t)
	reconciler := NewReconcileService(f.store, f.tasks, f.punches, f.supply, nil)

	f.store.MarkStatusPending("sr-gone", models.SupplyStatusRejected)
	res := reconciler.Reconcile(context.Background())
	require.Zero(t, res.StatusUpdates)
	require.Empty(t, f.store.PendingStatusUpdates())
}

// refreshingTaskRepo starts a store refresh right after each successful
// create and gives it a moment to finish before returning.
type refreshingTaskRepo struct {
	*testhelpers.FakeTaskLogRepo
	store     *ActivityStore
	refreshed chan struct{}
}

func (r *refreshingTaskRepo) Create(ctx context.Context, l *models.TaskLog) error {
	if err := r.FakeTaskLogRepo.Create(ctx, l); err != nil {
		return err
	}
	go func() {
		r.store.Refresh(context.Background())
		close(r.refreshed)
	}()
	select {
	case <-r.refreshed:
	case <-time.After(50 * time.Millisecond):
	}
	return nil
}

func TestReconcileWithConcurrentRefreshKeepsOneCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tasks := newTaskLogService(f, nil)

	f.tasks.Fail = true
	_, err := tasks.LogTask(ctx, 1, flatRequest(1, 1, "A"))
	require.NoError(t, err)
	f.tasks.Fail = false

	repo := &refreshingTaskRepo{FakeTaskLogRepo: f.tasks, store: f.store, refreshed: make(chan struct{})}
	reconciler := NewReconcileService(f.store, repo, f.punches, f.supply, nil)
	res := reconciler.Reconcile(ctx)
	require.Equal(t, 1, res.TaskLogs)
	<-repo.refreshed

	logs := f.store.TaskLogs()
	require.Len(t, logs, 1)
	require.Equal(t, "tl-1", logs[0].ID)
	require.False(t, logs[0].LocalOnly)
	require.Len(t, f.tasks.Logs, 1)
}
