package models

import (
	"strconv"
	"time"
)

type TaskLogStatus string

const (
	TaskLogStatusCompleted TaskLogStatus = "COMPLETED"
	TaskLogStatusPending   TaskLogStatus = "PENDING"
	TaskLogStatusVerified  TaskLogStatus = "VERIFIED"
	TaskLogStatusRejected  TaskLogStatus = "REJECTED"
)

func (s TaskLogStatus) Valid() bool {
	switch s {
	case TaskLogStatusCompleted, TaskLogStatusPending, TaskLogStatusVerified, TaskLogStatusRejected:
		return true
	}
	return false
}

// TaskLog records one task completion by a staff member. Location is set for
// floor, flat and block scoped tasks and absent for common-area tasks.
type TaskLog struct {
	ID         string        `json:"id"`
	TaskID     string        `json:"task_id"`
	StaffID    int64         `json:"staff_id"`
	Timestamp  int64         `json:"timestamp"`
	Status     TaskLogStatus `json:"status"`
	ImageURL   *string       `json:"image_url,omitempty"`
	AIFeedback *string       `json:"ai_feedback,omitempty"`
	AIRating   *float64      `json:"ai_rating,omitempty"`
	Block      *int          `json:"block,omitempty"`
	Floor      *int          `json:"floor,omitempty"`
	Flat       *string       `json:"flat,omitempty"`

	// LocalOnly marks a record synthesized after a failed remote write.
	LocalOnly bool `json:"local_only,omitempty"`
}

func (l *TaskLog) GetID() string { return l.ID }

func (l *TaskLog) At() time.Time { return time.UnixMilli(l.Timestamp) }

// HasFullLocation reports whether block, floor and flat are all set.
func (l *TaskLog) HasFullLocation() bool {
	return l.Block != nil && l.Floor != nil && l.Flat != nil && *l.Flat != ""
}

// HasLocation reports whether any part of the location is set.
func (l *TaskLog) HasLocation() bool {
	return l.Block != nil || l.Floor != nil || (l.Flat != nil && *l.Flat != "")
}

// FlatKey returns the billing key of the log's flat, if it has one.
func (l *TaskLog) FlatKey() (string, bool) {
	if !l.HasFullLocation() {
		return "", false
	}
	return FlatKey(*l.Block, *l.Flat, *l.Floor), true
}

// TaskSlotKey builds the slot identity used to de-duplicate completions.
func TaskSlotKey(taskID string, block, floor *int, flat *string) string {
	key := taskID + "|"
	if block != nil {
		key += strconv.Itoa(*block)
	}
	key += "|"
	if floor != nil {
		key += strconv.Itoa(*floor)
	}
	key += "|"
	if flat != nil {
		key += *flat
	}
	return key
}
