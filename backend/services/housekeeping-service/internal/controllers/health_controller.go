package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/app"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

// HealthController checks DB connectivity.
type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("housekeeping-service DB unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	resp := dtos.HealthCheckResponse{Status: "OK"}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
