package dtos

import "github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"

type OnDutyStaff struct {
	Staff          models.StaffMember `json:"staff"`
	CompletedToday int                `json:"completed_today"`
	Worked         WorkedDuration     `json:"worked"`
}

type OpenSupplyRequest struct {
	models.SupplyRequest
	RequesterName string `json:"requester_name"`
	MinutesAgo    int    `json:"minutes_ago"`
}

type DashboardResponse struct {
	Progress       DailyProgress       `json:"progress"`
	OnDuty         []OnDutyStaff       `json:"on_duty"`
	StaffTotal     int                 `json:"staff_total"`
	OpenRequests   []OpenSupplyRequest `json:"open_requests"`
	PendingUploads int                 `json:"pending_uploads"`
}

// ReconcileResponse reports one reconciliation pass.
type ReconcileResponse struct {
	Skipped        bool `json:"skipped"`
	TaskLogs       int  `json:"task_logs"`
	Punches        int  `json:"punches"`
	SupplyRequests int  `json:"supply_requests"`
	StatusUpdates  int  `json:"status_updates"`
	Remaining      int  `json:"remaining"`
}

type RefreshResponse struct {
	RefreshedAt string `json:"refreshed_at"`
	Staff       int    `json:"staff"`
	TaskLogs    int    `json:"task_logs"`
	Punches     int    `json:"punches"`
	Supplies    int    `json:"supplies"`
}
