package dtos

import "github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"

type AddStaffRequest struct {
	Name            string `json:"name" validate:"required,max=80"`
	Role            string `json:"role,omitempty" validate:"omitempty,max=40"`
	BlockAssignment string `json:"block_assignment" validate:"required,max=40"`
	Avatar          string `json:"avatar,omitempty" validate:"omitempty,url"`
}

type StaffListResponse struct {
	Staff []models.StaffMember `json:"staff"`
}

type StaffLogGroup struct {
	Date string           `json:"date"`
	Logs []models.TaskLog `json:"logs"`
}

// StaffLogsResponse backs the per-staff history view.
type StaffLogsResponse struct {
	Staff      models.StaffMember          `json:"staff"`
	TodayCount int                         `json:"today_count"`
	WeekCount  int                         `json:"week_count"`
	Breakdown  map[models.TaskCategory]int `json:"breakdown"`
	Groups     []StaffLogGroup             `json:"groups"`
}
