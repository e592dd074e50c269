package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/sirupsen/logrus"
)

type SupplyService struct {
	store    *ActivityStore
	repo     repositories.SupplyRequestRepository
	notifier SupplyNotifier
}

// NewSupplyService wires the supply handlers. notifier may be nil.
func NewSupplyService(store *ActivityStore, repo repositories.SupplyRequestRepository, notifier SupplyNotifier) *SupplyService {
	return &SupplyService{store: store, repo: repo, notifier: notifier}
}

// CreateRequest opens a supply request for requesterID. A failed remote
// write keeps a local-only record.
func (s *SupplyService) CreateRequest(ctx context.Context, requesterID int64, req dtos.CreateSupplyRequest) (models.SupplyRequest, error) {
	item := strings.TrimSpace(req.Item)
	quantity := strings.TrimSpace(req.Quantity)
	if item == "" || quantity == "" {
		return models.SupplyRequest{}, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeValidation, "Item and quantity are required", nil,
		)
	}

	candidate := models.SupplyRequest{
		Item:        item,
		Quantity:    quantity,
		Urgency:     req.Urgency,
		Status:      models.SupplyStatusOpen,
		RequesterID: requesterID,
		Timestamp:   s.store.Now().UnixMilli(),
	}

	wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
	defer cancel()

	rec := candidate
	if err := s.repo.Create(wctx, &rec); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"item":         item,
			"requester_id": requesterID,
		}).Warn("Supply request write failed; keeping local record")

		rec = candidate
		rec.ID = s.store.NewLocalID()
		rec.LocalOnly = true
	}
	s.store.PrependSupplyRequest(rec)

	if rec.Urgency == models.SupplyUrgencyHigh && s.notifier != nil {
		name := ""
		if m, ok := s.store.StaffByID(requesterID); ok {
			name = m.Name
		}
		go s.notifier.NotifyUrgentSupply(context.Background(), rec, name)
	}
	return rec, nil
}

// Approve marks the request FULFILLED.
func (s *SupplyService) Approve(ctx context.Context, id string) (models.SupplyRequest, error) {
	return s.setStatus(ctx, id, models.SupplyStatusFulfilled)
}

// Reject marks the request REJECTED.
func (s *SupplyService) Reject(ctx context.Context, id string) (models.SupplyRequest, error) {
	return s.setStatus(ctx, id, models.SupplyStatusRejected)
}

// setStatus applies status in memory whatever the remote outcome. A remote
// failure is queued for the reconciliation pass. Local-only requests carry
// their status to the backend when they are created there.
func (s *SupplyService) setStatus(ctx context.Context, id string, status models.SupplyStatus) (models.SupplyRequest, error) {
	current, ok := s.store.SupplyRequest(id)
	if !ok {
		return models.SupplyRequest{}, utils.NewAppError(
			http.StatusNotFound, utils.ErrCodeNotFound,
			constants.ErrMsgSupplyRequestNotFound, internal_utils.ErrSupplyRequestNotFound,
		)
	}

	if !current.LocalOnly {
		wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
		err := s.repo.UpdateWithRetry(wctx, id, func(r *models.SupplyRequest) error {
			r.Status = status
			return nil
		})
		cancel()

		if err != nil {
			utils.Logger.WithError(err).WithFields(logrus.Fields{
				"supply_request_id": id,
				"status":            status,
			}).Warn("Supply status update failed; applying locally")
			s.store.MarkStatusPending(id, status)
		} else {
			s.store.DropStatusPending(id)
		}
	}

	updated, _ := s.store.SetSupplyStatus(id, status)
	return updated, nil
}

// List returns the working set of requests, most recent first.
func (s *SupplyService) List() []models.SupplyRequest {
	return s.store.SupplyRequests()
}

// Open returns the OPEN requests, most recent first.
func (s *SupplyService) Open() []models.SupplyRequest {
	var out []models.SupplyRequest
	for _, r := range s.store.SupplyRequests() {
		if r.Status == models.SupplyStatusOpen {
			out = append(out, r)
		}
	}
	return out
}
