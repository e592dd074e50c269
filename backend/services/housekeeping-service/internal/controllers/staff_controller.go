package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

type StaffController struct {
	staffService *services.StaffService
	validate     *validator.Validate
}

func NewStaffController(s *services.StaffService) *StaffController {
	return &StaffController{staffService: s, validate: validator.New()}
}

// GET /api/v1/staff
func (c *StaffController) ListHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.StaffListResponse{Staff: c.staffService.List()})
}

// POST /api/v1/staff (admin role)
func (c *StaffController) AddHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AddStaffRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	m, err := c.staffService.AddStaff(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.Logger.WithField("staff_id", m.ID).Info("Staff member added")
	utils.RespondWithJSON(w, http.StatusCreated, m)
}

// GET /api/v1/staff/{id}/logs
func (c *StaffController) LogsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.staffService.Logs(r.Context(), int64(id))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
