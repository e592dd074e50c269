package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

type AdminController struct {
	adminService *services.AdminService
}

func NewAdminController(s *services.AdminService) *AdminController {
	return &AdminController{adminService: s}
}

// POST /api/v1/admin/refresh
func (c *AdminController) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.adminService.Refresh(r.Context()))
}

// POST /api/v1/admin/reconcile
func (c *AdminController) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.adminService.Reconcile(r.Context()))
}
