package services

import (
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

// DayBounds returns local midnight of t's day and the next midnight.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func inRange(tsMillis int64, start, end time.Time) bool {
	return tsMillis >= start.UnixMilli() && tsMillis < end.UnixMilli()
}

func filterTaskLogs(logs []models.TaskLog, start, end time.Time) []models.TaskLog {
	out := make([]models.TaskLog, 0, len(logs))
	for _, l := range logs {
		if inRange(l.Timestamp, start, end) {
			out = append(out, l)
		}
	}
	return out
}

func filterPunches(punches []models.PunchLog, staffID int64, start, end time.Time) []models.PunchLog {
	var out []models.PunchLog
	for _, p := range punches {
		if p.StaffID == staffID && inRange(p.Timestamp, start, end) {
			out = append(out, p)
		}
	}
	return out
}

func derefTaskLogs(in []*models.TaskLog) []models.TaskLog {
	out := make([]models.TaskLog, 0, len(in))
	for _, l := range in {
		if l != nil {
			out = append(out, *l)
		}
	}
	return out
}

func derefPunchLogs(in []*models.PunchLog) []models.PunchLog {
	out := make([]models.PunchLog, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func derefSupplyRequests(in []*models.SupplyRequest) []models.SupplyRequest {
	out := make([]models.SupplyRequest, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func derefStaff(in []*models.StaffMember) []models.StaffMember {
	out := make([]models.StaffMember, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
