package services

import (
	"sort"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

// ComputeWorkedDuration pairs each IN with the punch right after it when that
// punch is an OUT, and with now otherwise. Alternation is not validated: an
// IN followed by another IN runs until now, an OUT without an IN adds
// nothing. Segments that would end before they start add nothing.
func ComputeWorkedDuration(punches []models.PunchLog, now time.Time) dtos.WorkedDuration {
	sorted := make([]models.PunchLog, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	nowMs := now.UnixMilli()
	var totalMs int64
	for i, p := range sorted {
		if p.Type != models.PunchTypeIn {
			continue
		}
		end := nowMs
		if i+1 < len(sorted) && sorted[i+1].Type == models.PunchTypeOut {
			end = sorted[i+1].Timestamp
		}
		if end > p.Timestamp {
			totalMs += end - p.Timestamp
		}
	}

	minutes := int(totalMs / int64(time.Minute/time.Millisecond))
	return dtos.WorkedDuration{Hours: minutes / 60, Minutes: minutes % 60}
}

// DutyStateOf returns ON_DUTY when the latest of today's punches is IN.
// With no punches the state is OFF_DUTY.
func DutyStateOf(todaysPunches []models.PunchLog) models.DutyState {
	latest := latestPunch(todaysPunches)
	if latest != nil && latest.Type == models.PunchTypeIn {
		return models.DutyStateOn
	}
	return models.DutyStateOff
}

// NextPunchType is the punch a toggle action records from state.
func NextPunchType(state models.DutyState) models.PunchType {
	if state == models.DutyStateOn {
		return models.PunchTypeOut
	}
	return models.PunchTypeIn
}

// WorkPercent is progress towards the standard working day, capped at 100.
func WorkPercent(d dtos.WorkedDuration) int {
	target := int(constants.WorkDayTarget / time.Minute)
	p := dtos.PercentOf(d.TotalMinutes(), target)
	if p > 100 {
		return 100
	}
	return p
}

func latestPunch(punches []models.PunchLog) *models.PunchLog {
	var latest *models.PunchLog
	for i := range punches {
		if latest == nil || punches[i].Timestamp > latest.Timestamp {
			latest = &punches[i]
		}
	}
	return latest
}
