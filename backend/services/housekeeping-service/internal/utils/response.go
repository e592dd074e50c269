package utils

// Error codes specific to housekeeping-service.
const (
	ErrCodeUnknownTaskType = "unknown_task_type"
	ErrCodeInvalidLocation = "invalid_location"
	ErrCodeOutsideSociety  = "outside_society"
	ErrCodeInvalidImage    = "invalid_image"
)
