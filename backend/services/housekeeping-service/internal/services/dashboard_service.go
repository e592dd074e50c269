package services

import (
	"context"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

type DashboardService struct {
	store    *ActivityStore
	progress *ProgressService
}

func NewDashboardService(store *ActivityStore, progress *ProgressService) *DashboardService {
	return &DashboardService{store: store, progress: progress}
}

// Dashboard assembles the manager overview for the current day.
func (s *DashboardService) Dashboard(ctx context.Context) dtos.DashboardResponse {
	now := s.store.Now()
	start, end := s.store.Today()
	todaysLogs := s.store.TaskLogsBetween(start, end)

	completedBy := map[int64]int{}
	for _, l := range todaysLogs {
		if l.Status == models.TaskLogStatusCompleted {
			completedBy[l.StaffID]++
		}
	}

	staff := s.store.Staff()
	names := make(map[int64]string, len(staff))
	resp := dtos.DashboardResponse{
		Progress:     s.progress.Daily(ctx),
		OnDuty:       []dtos.OnDutyStaff{},
		StaffTotal:   len(staff),
		OpenRequests: []dtos.OpenSupplyRequest{},
	}
	for _, m := range staff {
		names[m.ID] = m.Name
		punches := s.store.PunchesFor(m.ID, start, end)
		if DutyStateOf(punches) != models.DutyStateOn {
			continue
		}
		resp.OnDuty = append(resp.OnDuty, dtos.OnDutyStaff{
			Staff:          m,
			CompletedToday: completedBy[m.ID],
			Worked:         ComputeWorkedDuration(punches, now),
		})
	}

	for _, r := range s.store.SupplyRequests() {
		if r.Status != models.SupplyStatusOpen {
			continue
		}
		minutes := int(now.Sub(r.At()).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		name := names[r.RequesterID]
		if name == "" {
			name = "Unknown"
		}
		resp.OpenRequests = append(resp.OpenRequests, dtos.OpenSupplyRequest{
			SupplyRequest: r,
			RequesterName: name,
			MinutesAgo:    minutes,
		})
	}

	resp.PendingUploads = len(s.store.LocalTaskLogs()) + len(s.store.LocalPunchLogs()) +
		len(s.store.LocalSupplyRequests()) + len(s.store.PendingStatusUpdates())
	return resp
}
