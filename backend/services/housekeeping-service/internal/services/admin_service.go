package services

import (
	"context"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

// AdminService exposes the store maintenance operations.
type AdminService struct {
	store      *ActivityStore
	reconciler *ReconcileService
}

func NewAdminService(store *ActivityStore, reconciler *ReconcileService) *AdminService {
	return &AdminService{store: store, reconciler: reconciler}
}

// Refresh reconciles first so freshly created records come back canonical,
// then reloads the working set.
func (s *AdminService) Refresh(ctx context.Context) dtos.RefreshResponse {
	if s.reconciler != nil {
		s.reconciler.Reconcile(ctx)
	}
	s.store.Refresh(ctx)
	utils.Logger.Info("Activity store refreshed")

	return dtos.RefreshResponse{
		RefreshedAt: s.store.RefreshedAt().In(s.store.Location()).Format(time.RFC3339),
		Staff:       len(s.store.Staff()),
		TaskLogs:    len(s.store.TaskLogs()),
		Punches:     len(s.store.PunchLogs()),
		Supplies:    len(s.store.SupplyRequests()),
	}
}

func (s *AdminService) Reconcile(ctx context.Context) dtos.ReconcileResponse {
	return s.reconciler.Reconcile(ctx)
}
