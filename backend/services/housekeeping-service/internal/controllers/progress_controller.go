package controllers

import (
	"net/http"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

const dateParamLayout = "2006-01-02"

type ProgressController struct {
	progressService  *services.ProgressService
	dashboardService *services.DashboardService
	loc              *time.Location
}

func NewProgressController(ps *services.ProgressService, ds *services.DashboardService, loc *time.Location) *ProgressController {
	return &ProgressController{progressService: ps, dashboardService: ds, loc: loc}
}

// GET /api/v1/topology
func (c *ProgressController) TopologyHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.progressService.Topology())
}

// GET /api/v1/progress/daily[?date=YYYY-MM-DD]
func (c *ProgressController) DailyHandler(w http.ResponseWriter, r *http.Request) {
	day, ok := c.parseDate(w, r)
	if !ok {
		return
	}
	if day.IsZero() {
		utils.RespondWithJSON(w, http.StatusOK, c.progressService.Daily(r.Context()))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.progressService.DailyOn(r.Context(), day))
}

// GET /api/v1/progress/blocks
func (c *ProgressController) BlocksHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.progressService.Navigation())
}

// GET /api/v1/progress/blocks/{block}/floors
func (c *ProgressController) FloorsHandler(w http.ResponseWriter, r *http.Request) {
	block, err := pathInt(r, "block")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.progressService.Floors(block)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/progress/blocks/{block}/floors/{floor}
func (c *ProgressController) FloorTasksHandler(w http.ResponseWriter, r *http.Request) {
	block, err := pathInt(r, "block")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	floor, err := pathInt(r, "floor")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	resp, err := c.progressService.FloorTasks(r.Context(), block, floor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/dashboard
func (c *ProgressController) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.dashboardService.Dashboard(r.Context()))
}

// parseDate reads the optional date query parameter in the society's zone.
// A missing parameter yields the zero time.
func (c *ProgressController) parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	return parseDateParam(w, r, c.loc)
}

func parseDateParam(w http.ResponseWriter, r *http.Request, loc *time.Location) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, true
	}
	day, err := time.ParseInLocation(dateParamLayout, raw, loc)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "date must be YYYY-MM-DD", nil, err,
		)
		return time.Time{}, false
	}
	return day, true
}
