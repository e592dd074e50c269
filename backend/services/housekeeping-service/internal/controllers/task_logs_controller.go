package controllers

import (
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

type TaskLogsController struct {
	taskLogService *services.TaskLogService
	validate       *validator.Validate
}

func NewTaskLogsController(s *services.TaskLogService) *TaskLogsController {
	return &TaskLogsController{taskLogService: s, validate: validator.New()}
}

// GET /api/v1/task-logs
func (c *TaskLogsController) ListTodayHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.TaskLogsResponse{Logs: c.taskLogService.TodaysLogs()})
}

// POST /api/v1/task-logs
func (c *TaskLogsController) LogTaskHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := staffIDFromRequest(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.LogTaskRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	rec, err := c.taskLogService.LogTask(r.Context(), staffID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}
