package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type SuppliesController struct {
	supplyService *services.SupplyService
	validate      *validator.Validate
}

func NewSuppliesController(s *services.SupplyService) *SuppliesController {
	return &SuppliesController{supplyService: s, validate: validator.New()}
}

// GET /api/v1/supplies[?status=open]
func (c *SuppliesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	var reqs []models.SupplyRequest
	if r.URL.Query().Get("status") == "open" {
		reqs = c.supplyService.Open()
	} else {
		reqs = c.supplyService.List()
	}
	if reqs == nil {
		reqs = []models.SupplyRequest{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SupplyRequestsResponse{Requests: reqs})
}

// POST /api/v1/supplies
func (c *SuppliesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := staffIDFromRequest(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateSupplyRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	rec, err := c.supplyService.CreateRequest(r.Context(), staffID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}

// POST /api/v1/supplies/{id}/approve
func (c *SuppliesController) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := c.supplyService.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// POST /api/v1/supplies/{id}/reject
func (c *SuppliesController) RejectHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := c.supplyService.Reject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rec)
}
