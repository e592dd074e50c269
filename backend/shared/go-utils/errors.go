package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors shared by services.
var (
	ErrRowVersionConflict     = errors.New("row_version_conflict")
	ErrExternalServiceFailure = errors.New("external_service_failure")
	ErrNoRowsUpdated          = errors.New("no_rows_updated")
	ErrNotFound               = errors.New("not_found")
	ErrForbidden              = errors.New("forbidden")
)

// AppError carries an HTTP status and public error code from a service to a
// controller.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError writes err as a JSON error response.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
