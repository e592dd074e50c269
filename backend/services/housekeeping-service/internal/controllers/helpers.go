package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	shared_dtos "github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-middleware"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// staffIDFromRequest resolves the JWT subject to a staff member id.
func staffIDFromRequest(r *http.Request) (int64, error) {
	sub, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, utils.NewAppError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.NewAppError(
			http.StatusForbidden, utils.ErrCodeForbidden, "Token subject is not a staff member", err,
		)
	}
	return id, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeInvalidPayload, fmt.Sprintf("Invalid %s %q", name, raw), err,
		)
	}
	return v, nil
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may
// continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	if err := validate.StructCtx(r.Context(), dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid request", formatValidationErrors(vErrs), err,
			)
			return false
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return false
	}
	return true
}

func formatValidationErrors(errs validator.ValidationErrors) []shared_dtos.ValidationErrorDetail {
	var details []shared_dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("Field '%s' must be a valid URL", err.Field())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, shared_dtos.NewValidationErrorDetail(err.Field(), err.Tag(), message))
	}
	return details
}
