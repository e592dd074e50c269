package dtos

import "github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"

type CreateSupplyRequest struct {
	Item     string               `json:"item" validate:"required,max=120"`
	Quantity string               `json:"quantity" validate:"required,max=60"`
	Urgency  models.SupplyUrgency `json:"urgency" validate:"required,oneof=LOW MEDIUM HIGH"`
}

type SupplyRequestsResponse struct {
	Requests []models.SupplyRequest `json:"requests"`
}
