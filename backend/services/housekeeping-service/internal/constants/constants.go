package constants

import "time"

// Store window
const (
	// Refresh loads this many days of logs: today plus the previous week used
	// by staff log stats.
	StoreWindowDays        = 8
	SupplyRequestListLimit = 200
)

// Attendance
const (
	WorkDayTarget       = 8 * time.Hour
	PunchGeofenceMeters = 300
)

// Background jobs
const (
	ReconcileSchedule = "@every 2m"
	RefreshSchedule   = "@every 5m"
	ReconcileLockKey  = "housekeeping:reconcile"
	ReconcileLockTTL  = 90 * time.Second
)

// Remote calls
const (
	RemoteFetchTimeout  = 15 * time.Second
	RemoteWriteTimeout  = 10 * time.Second
	ActiveFlatsCacheKey = "housekeeping:active-flats"
	ActiveFlatsCacheTTL = 10 * time.Minute
	AIRatingTimeout     = 20 * time.Second
	BillingMaxRetries   = 2
	BillingRetryInitial = time.Second
)

// Proof images
const (
	ProofImageMaxDimension = 1280
	ProofImageMaxBytes     = 10 << 20
	ProofImageJPEGQuality  = 85
)

const (
	ErrMsgSupplyRequestNotFound = "Supply request not found"
	ErrMsgStaffNotFound         = "Staff member not found"
)
