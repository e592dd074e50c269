package dtos

import (
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

type PunchRequest struct {
	Type      models.PunchType `json:"type,omitempty" validate:"omitempty,oneof=IN OUT"`
	Latitude  *float64         `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64         `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// WorkedDuration is whole hours plus remaining whole minutes.
type WorkedDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (d WorkedDuration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

type AttendanceStatus struct {
	StaffID       int64             `json:"staff_id"`
	Name          string            `json:"name,omitempty"`
	Avatar        string            `json:"avatar,omitempty"`
	DutyState     models.DutyState  `json:"duty_state"`
	OnDuty        bool              `json:"on_duty"`
	LastPunch     *time.Time        `json:"last_punch,omitempty"`
	Worked        WorkedDuration    `json:"worked"`
	WorkPercent   int               `json:"work_percent"`
	NextPunchType models.PunchType  `json:"next_punch_type"`
	Punches       []models.PunchLog `json:"punches"`
}

type PunchResponse struct {
	Punch  models.PunchLog  `json:"punch"`
	Status AttendanceStatus `json:"status"`
}

type AttendanceOverview struct {
	OnDuty int                `json:"on_duty"`
	Total  int                `json:"total"`
	Staff  []AttendanceStatus `json:"staff"`
}
