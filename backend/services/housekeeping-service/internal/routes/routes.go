package routes

const (
	// Health
	Health = "/health"

	// Progress (staff and manager)
	Topology       = "/api/v1/topology"
	ProgressDaily  = "/api/v1/progress/daily"
	ProgressBlocks = "/api/v1/progress/blocks"
	ProgressFloors = "/api/v1/progress/blocks/{block}/floors"
	ProgressFloor  = "/api/v1/progress/blocks/{block}/floors/{floor}"
	Dashboard      = "/api/v1/dashboard"

	// Staff events
	TaskLogs        = "/api/v1/task-logs"
	AttendancePunch = "/api/v1/attendance/punch"
	Attendance      = "/api/v1/attendance"
	Proofs          = "/api/v1/proofs"

	// Supplies
	Supplies      = "/api/v1/supplies"
	SupplyApprove = "/api/v1/supplies/{id}/approve"
	SupplyReject  = "/api/v1/supplies/{id}/reject"

	// Staff directory
	Staff     = "/api/v1/staff"
	StaffLogs = "/api/v1/staff/{id}/logs"

	// Reports
	ReportDaily = "/api/v1/reports/daily.xlsx"

	// Admin
	AdminRefresh   = "/api/v1/admin/refresh"
	AdminReconcile = "/api/v1/admin/reconcile"
)
