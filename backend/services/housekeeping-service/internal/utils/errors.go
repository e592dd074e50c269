package utils

import "errors"

// Sentinel errors for housekeeping-service domain logic.
var (
	ErrUnknownTaskType       = errors.New("unknown_task_type")
	ErrInvalidLocation       = errors.New("invalid_location")
	ErrSupplyRequestNotFound = errors.New("supply_request_not_found")
	ErrStaffNotFound         = errors.New("staff_not_found")
	ErrPunchOutsideSociety   = errors.New("punch_outside_society")
	ErrInvalidImage          = errors.New("invalid_image")
)
