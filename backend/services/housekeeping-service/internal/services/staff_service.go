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
)

const staffLogDateLayout = "2006-01-02"

type StaffService struct {
	store   *ActivityStore
	repo    repositories.StaffMemberRepository
	catalog models.TaskCatalog
}

func NewStaffService(store *ActivityStore, repo repositories.StaffMemberRepository, catalog models.TaskCatalog) *StaffService {
	return &StaffService{store: store, repo: repo, catalog: catalog}
}

func (s *StaffService) List() []models.StaffMember {
	return s.store.Staff()
}

// AddStaff creates a staff member. Unlike the event handlers there is no
// local fallback: a failed write is returned to the caller.
func (s *StaffService) AddStaff(ctx context.Context, req dtos.AddStaffRequest) (models.StaffMember, error) {
	name := strings.TrimSpace(req.Name)
	block := strings.TrimSpace(req.BlockAssignment)
	if name == "" || block == "" {
		return models.StaffMember{}, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeValidation, "Name and block assignment are required", nil,
		)
	}

	m := models.StaffMember{
		Name:            name,
		Role:            strings.TrimSpace(req.Role),
		Avatar:          strings.TrimSpace(req.Avatar),
		BlockAssignment: block,
	}
	if m.Role == "" {
		m.Role = models.StaffRoleHousekeeper
	}
	if m.Avatar == "" {
		m.Avatar = models.DefaultAvatarURL(name)
	}

	wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
	defer cancel()
	if err := s.repo.Create(wctx, &m); err != nil {
		return models.StaffMember{}, utils.NewAppError(
			http.StatusBadGateway, utils.ErrCodeExternalServiceFailure,
			"Failed to add staff member", fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err),
		)
	}

	s.store.AddStaff(m)
	return m, nil
}

// Logs summarises staffID's task logs over the stored window: today's and the
// last seven days' counts, a per-category breakdown and the logs grouped by
// local date, most recent first.
func (s *StaffService) Logs(ctx context.Context, staffID int64) (dtos.StaffLogsResponse, error) {
	member, err := s.lookup(ctx, staffID)
	if err != nil {
		return dtos.StaffLogsResponse{}, err
	}

	todayStart, todayEnd := s.store.Today()
	weekStart := todayStart.AddDate(0, 0, -6)
	loc := s.store.Location()

	resp := dtos.StaffLogsResponse{
		Staff:     member,
		Breakdown: map[models.TaskCategory]int{},
		Groups:    []dtos.StaffLogGroup{},
	}
	for _, c := range s.catalog.Categories() {
		resp.Breakdown[c] = 0
	}

	for _, l := range s.store.TaskLogs() {
		if l.StaffID != staffID {
			continue
		}
		if inRange(l.Timestamp, todayStart, todayEnd) {
			resp.TodayCount++
		}
		if inRange(l.Timestamp, weekStart, todayEnd) {
			resp.WeekCount++
			resp.Breakdown[s.catalog.CategoryOf(l.TaskID)]++
		}

		date := l.At().In(loc).Format(staffLogDateLayout)
		if n := len(resp.Groups); n > 0 && resp.Groups[n-1].Date == date {
			resp.Groups[n-1].Logs = append(resp.Groups[n-1].Logs, l)
			continue
		}
		resp.Groups = append(resp.Groups, dtos.StaffLogGroup{Date: date, Logs: []models.TaskLog{l}})
	}
	return resp, nil
}

func (s *StaffService) lookup(ctx context.Context, staffID int64) (models.StaffMember, error) {
	if m, ok := s.store.StaffByID(staffID); ok {
		return m, nil
	}
	m, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to look up staff %d", staffID)
	}
	if m == nil {
		return models.StaffMember{}, utils.NewAppError(
			http.StatusNotFound, utils.ErrCodeNotFound, constants.ErrMsgStaffNotFound, internal_utils.ErrStaffNotFound,
		)
	}
	return *m, nil
}
