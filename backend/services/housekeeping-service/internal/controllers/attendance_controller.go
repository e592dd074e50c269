package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

type AttendanceController struct {
	punchService *services.PunchService
	validate     *validator.Validate
}

func NewAttendanceController(s *services.PunchService) *AttendanceController {
	return &AttendanceController{punchService: s, validate: validator.New()}
}

// GET /api/v1/attendance/punch
func (c *AttendanceController) MyStatusHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := staffIDFromRequest(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.punchService.Status(staffID))
}

// POST /api/v1/attendance/punch
// An empty body toggles the current duty state.
func (c *AttendanceController) PunchHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := staffIDFromRequest(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.PunchRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, c.validate, &req) {
			return
		}
	}

	resp, err := c.punchService.Punch(r.Context(), staffID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/attendance
func (c *AttendanceController) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.punchService.Overview())
}
