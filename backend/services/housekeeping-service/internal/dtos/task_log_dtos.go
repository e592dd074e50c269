package dtos

import "github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"

type LogTaskRequest struct {
	TaskID   string               `json:"task_id" validate:"required,max=64"`
	Status   models.TaskLogStatus `json:"status,omitempty" validate:"omitempty,oneof=COMPLETED PENDING VERIFIED REJECTED"`
	ImageURL *string              `json:"image_url,omitempty" validate:"omitempty,max=2000000"`
	Block    *int                 `json:"block,omitempty" validate:"omitempty,min=1"`
	Floor    *int                 `json:"floor,omitempty" validate:"omitempty,min=1"`
	Flat     *string              `json:"flat,omitempty" validate:"omitempty,max=4"`
}

type TaskLogsResponse struct {
	Logs []models.TaskLog `json:"logs"`
}
