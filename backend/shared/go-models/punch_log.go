package models

import "time"

type PunchType string

const (
	PunchTypeIn  PunchType = "IN"
	PunchTypeOut PunchType = "OUT"
)

func (p PunchType) Valid() bool {
	return p == PunchTypeIn || p == PunchTypeOut
}

// PunchLog is one attendance event.
type PunchLog struct {
	ID        string    `json:"id"`
	StaffID   int64     `json:"staff_id"`
	Type      PunchType `json:"type"`
	Timestamp int64     `json:"timestamp"`

	LocalOnly bool `json:"local_only,omitempty"`
}

func (p *PunchLog) GetID() string { return p.ID }

func (p *PunchLog) At() time.Time { return time.UnixMilli(p.Timestamp) }

// DutyState is derived from the latest punch of the day.
type DutyState string

const (
	DutyStateOff DutyState = "OFF_DUTY"
	DutyStateOn  DutyState = "ON_DUTY"
)
