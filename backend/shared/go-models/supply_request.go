package models

import "time"

type SupplyUrgency string

const (
	SupplyUrgencyLow    SupplyUrgency = "LOW"
	SupplyUrgencyMedium SupplyUrgency = "MEDIUM"
	SupplyUrgencyHigh   SupplyUrgency = "HIGH"
)

type SupplyStatus string

const (
	SupplyStatusOpen      SupplyStatus = "OPEN"
	SupplyStatusFulfilled SupplyStatus = "FULFILLED"
	SupplyStatusRejected  SupplyStatus = "REJECTED"
)

// SupplyRequest is a staff request for consumables. Status changes only
// through approve/reject.
type SupplyRequest struct {
	Versioned

	ID          string        `json:"id"`
	Item        string        `json:"item"`
	Quantity    string        `json:"quantity"`
	Urgency     SupplyUrgency `json:"urgency"`
	Status      SupplyStatus  `json:"status"`
	RequesterID int64         `json:"requester_id"`
	Timestamp   int64         `json:"timestamp"`

	LocalOnly bool `json:"local_only,omitempty"`
}

func (s *SupplyRequest) GetID() string { return s.ID }

func (s *SupplyRequest) At() time.Time { return time.UnixMilli(s.Timestamp) }
