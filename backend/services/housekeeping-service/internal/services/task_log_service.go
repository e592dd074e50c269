package services

import (
	"context"
	"fmt"
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

type TaskLogService struct {
	store    *ActivityStore
	repo     repositories.TaskLogRepository
	topology models.BuildingTopology
	catalog  models.TaskCatalog
	rater    ProofRater
}

// NewTaskLogService wires the task log handler. rater may be nil.
func NewTaskLogService(
	store *ActivityStore,
	repo repositories.TaskLogRepository,
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	rater ProofRater,
) *TaskLogService {
	return &TaskLogService{store: store, repo: repo, topology: topology, catalog: catalog, rater: rater}
}

// LogTask records a task for staffID. The remote write is attempted first;
// when it fails a local-only record is kept instead and the call still
// succeeds.
func (s *TaskLogService) LogTask(ctx context.Context, staffID int64, req dtos.LogTaskRequest) (models.TaskLog, error) {
	def, ok := s.catalog.Lookup(req.TaskID)
	if !ok {
		return models.TaskLog{}, utils.NewAppError(
			http.StatusBadRequest, internal_utils.ErrCodeUnknownTaskType,
			fmt.Sprintf("Unknown task type %q", req.TaskID), internal_utils.ErrUnknownTaskType,
		)
	}

	candidate := models.TaskLog{
		TaskID:    def.TypeID,
		StaffID:   staffID,
		Timestamp: s.store.Now().UnixMilli(),
		Status:    req.Status,
		ImageURL:  req.ImageURL,
		Block:     req.Block,
		Floor:     req.Floor,
		Flat:      req.Flat,
	}
	if candidate.Status == "" {
		candidate.Status = models.TaskLogStatusCompleted
	}
	if candidate.Flat != nil {
		flat := strings.ToUpper(strings.TrimSpace(*candidate.Flat))
		candidate.Flat = &flat
	}
	if err := ValidateTaskLocation(s.topology, def, &candidate); err != nil {
		return models.TaskLog{}, utils.NewAppError(
			http.StatusBadRequest, internal_utils.ErrCodeInvalidLocation, err.Error(), internal_utils.ErrInvalidLocation,
		)
	}

	s.rate(ctx, def, &candidate)

	wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
	defer cancel()

	rec := candidate
	if err := s.repo.Create(wctx, &rec); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"task_id":  candidate.TaskID,
			"staff_id": staffID,
		}).Warn("Task log write failed; keeping local record")

		rec = candidate
		rec.ID = s.store.NewLocalID()
		rec.LocalOnly = true
	}

	s.store.PrependTaskLog(rec)
	return rec, nil
}

// TodaysLogs returns the logs of the current society-local day, most recent
// first.
func (s *TaskLogService) TodaysLogs() []models.TaskLog {
	start, end := s.store.Today()
	return s.store.TaskLogsBetween(start, end)
}

func (s *TaskLogService) rate(ctx context.Context, def models.TaskDefinition, l *models.TaskLog) {
	if s.rater == nil || l.ImageURL == nil || *l.ImageURL == "" {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, constants.AIRatingTimeout)
	defer cancel()

	rating, err := s.rater.RateProof(rctx, *l.ImageURL, def)
	if err != nil {
		utils.Logger.WithError(err).WithField("task_id", def.TypeID).Warn("Proof rating failed")
		return
	}
	if rating == nil {
		return
	}
	l.AIRating = utils.Ptr(rating.Rating)
	l.AIFeedback = utils.Ptr(rating.Feedback)
}

// ValidateTaskLocation checks that l carries exactly the location parts its
// task scope needs and that they exist in the topology.
func ValidateTaskLocation(topology models.BuildingTopology, def models.TaskDefinition, l *models.TaskLog) error {
	hasFlat := l.Flat != nil && *l.Flat != ""
	if l.Flat != nil && !hasFlat {
		l.Flat = nil
	}

	needBlock, needFloor, needFlat := false, false, false
	switch def.Scope {
	case models.TaskScopeCommon:
	case models.TaskScopePerBlock:
		needBlock = true
	case models.TaskScopePerFloor:
		needBlock, needFloor = true, true
	case models.TaskScopePerFlat:
		needBlock, needFloor, needFlat = true, true, true
	}

	if (l.Block != nil) != needBlock || (l.Floor != nil) != needFloor || hasFlat != needFlat {
		return fmt.Errorf("%s tasks need %s", strings.ToLower(string(def.Scope)), scopeLocationHint(def.Scope))
	}
	if needBlock {
		if _, ok := topology.Block(*l.Block); !ok {
			return fmt.Errorf("block %d does not exist", *l.Block)
		}
	}
	if needFloor && !topology.HasFloor(*l.Floor) {
		return fmt.Errorf("floor %d does not exist", *l.Floor)
	}
	if needFlat && !topology.HasFlat(*l.Block, *l.Floor, *l.Flat) {
		return fmt.Errorf("flat %s does not exist", models.FlatKey(*l.Block, *l.Flat, *l.Floor))
	}
	return nil
}

func scopeLocationHint(scope models.TaskScope) string {
	switch scope {
	case models.TaskScopePerBlock:
		return "a block only"
	case models.TaskScopePerFloor:
		return "a block and floor only"
	case models.TaskScopePerFlat:
		return "a block, floor and flat"
	}
	return "no location"
}
