package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/bsm/redislock"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

// ReconcileService pushes local-only records and unconfirmed status changes
// to the persistence backend.
type ReconcileService struct {
	store      *ActivityStore
	taskRepo   repositories.TaskLogRepository
	punchRepo  repositories.PunchLogRepository
	supplyRepo repositories.SupplyRequestRepository
	locker     *redislock.Client

	mu sync.Mutex
}

// NewReconcileService wires the pass. locker may be nil when redis is not
// configured; replicas then reconcile independently.
func NewReconcileService(
	store *ActivityStore,
	taskRepo repositories.TaskLogRepository,
	punchRepo repositories.PunchLogRepository,
	supplyRepo repositories.SupplyRequestRepository,
	locker *redislock.Client,
) *ReconcileService {
	return &ReconcileService{
		store:      store,
		taskRepo:   taskRepo,
		punchRepo:  punchRepo,
		supplyRepo: supplyRepo,
		locker:     locker,
	}
}

// Reconcile retries every local-only create, replacing each record with the
// canonical one on success, then replays pending status updates. Records that
// still fail stay local for the next pass.
func (s *ReconcileService) Reconcile(ctx context.Context) dtos.ReconcileResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.store.holdSync()()

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, constants.ReconcileLockKey, constants.ReconcileLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			utils.Logger.Debug("Reconcile lock held elsewhere; skipping pass")
			return dtos.ReconcileResponse{Skipped: true}
		} else if err != nil {
			utils.Logger.WithError(err).Warn("Error obtaining reconcile lock; proceeding without it")
		} else {
			defer func() {
				if releaseErr := lock.Release(context.Background()); releaseErr != nil {
					utils.Logger.WithError(releaseErr).Warn("Failed to release reconcile lock")
				}
			}()
		}
	}

	var res dtos.ReconcileResponse
	res.TaskLogs = s.reconcileTaskLogs(ctx)
	res.Punches = s.reconcilePunches(ctx)
	res.SupplyRequests = s.reconcileSupplyRequests(ctx)
	res.StatusUpdates = s.reconcileStatusUpdates(ctx)

	res.Remaining = len(s.store.LocalTaskLogs()) + len(s.store.LocalPunchLogs()) +
		len(s.store.LocalSupplyRequests()) + len(s.store.PendingStatusUpdates())

	if n := res.TaskLogs + res.Punches + res.SupplyRequests + res.StatusUpdates; n > 0 || res.Remaining > 0 {
		utils.Logger.WithFields(logrus.Fields{
			"task_logs":       res.TaskLogs,
			"punches":         res.Punches,
			"supply_requests": res.SupplyRequests,
			"status_updates":  res.StatusUpdates,
			"remaining":       res.Remaining,
		}).Info("Reconcile pass finished")
	}
	return res
}

func (s *ReconcileService) reconcileTaskLogs(ctx context.Context) int {
	n := 0
	for _, l := range s.store.LocalTaskLogs() {
		rec := l
		rec.ID = ""
		rec.LocalOnly = false

		wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
		err := s.taskRepo.Create(wctx, &rec)
		cancel()
		if err != nil {
			utils.Logger.WithError(err).WithField("local_id", l.ID).Debug("Task log still not persisted")
			continue
		}
		if s.store.ReplaceTaskLog(l.ID, rec) {
			n++
		}
	}
	return n
}

func (s *ReconcileService) reconcilePunches(ctx context.Context) int {
	n := 0
	for _, p := range s.store.LocalPunchLogs() {
		rec := p
		rec.ID = ""
		rec.LocalOnly = false

		wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
		err := s.punchRepo.Create(wctx, &rec)
		cancel()
		if err != nil {
			utils.Logger.WithError(err).WithField("local_id", p.ID).Debug("Punch still not persisted")
			continue
		}
		if s.store.ReplacePunchLog(p.ID, rec) {
			n++
		}
	}
	return n
}

// reconcileSupplyRequests creates local requests with their current status,
// so an approval made while the request was local is carried over.
func (s *ReconcileService) reconcileSupplyRequests(ctx context.Context) int {
	n := 0
	for _, r := range s.store.LocalSupplyRequests() {
		rec := r
		rec.ID = ""
		rec.LocalOnly = false

		wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
		err := s.supplyRepo.Create(wctx, &rec)
		cancel()
		if err != nil {
			utils.Logger.WithError(err).WithField("local_id", r.ID).Debug("Supply request still not persisted")
			continue
		}

		if cur, ok := s.store.SupplyRequest(r.ID); ok && cur.Status != rec.Status {
			rec.Status = cur.Status
			s.store.MarkStatusPending(rec.ID, cur.Status)
		}
		if s.store.ReplaceSupplyRequest(r.ID, rec) {
			n++
		}
	}
	return n
}

func (s *ReconcileService) reconcileStatusUpdates(ctx context.Context) int {
	n := 0
	for id, status := range s.store.PendingStatusUpdates() {
		if utils.IsLocalID(id) {
			s.store.ClearStatusPending(id, status)
			continue
		}

		wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
		err := s.supplyRepo.UpdateWithRetry(wctx, id, func(r *models.SupplyRequest) error {
			r.Status = status
			return nil
		})
		cancel()

		switch {
		case err == nil:
			s.store.ClearStatusPending(id, status)
			n++
		case errors.Is(err, pgx.ErrNoRows):
			utils.Logger.WithField("supply_request_id", id).Warn("Supply request gone from backend; dropping pending status")
			s.store.ClearStatusPending(id, status)
		default:
			utils.Logger.WithError(err).WithField("supply_request_id", id).Debug("Supply status still not persisted")
		}
	}
	return n
}
