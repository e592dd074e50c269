package services

import (
	"context"
	"net/http"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/sirupsen/logrus"
)

// Geofence restricts punches to a radius around the society. A zero value
// disables the check.
type Geofence struct {
	Enabled      bool
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

type PunchService struct {
	store    *ActivityStore
	repo     repositories.PunchLogRepository
	geofence Geofence
}

func NewPunchService(store *ActivityStore, repo repositories.PunchLogRepository, geofence Geofence) *PunchService {
	if geofence.Enabled && geofence.RadiusMeters <= 0 {
		geofence.RadiusMeters = constants.PunchGeofenceMeters
	}
	return &PunchService{store: store, repo: repo, geofence: geofence}
}

// Punch records an attendance event. Without an explicit type it toggles the
// current duty state. Alternation is not enforced.
func (s *PunchService) Punch(ctx context.Context, staffID int64, req dtos.PunchRequest) (dtos.PunchResponse, error) {
	if err := s.checkGeofence(req); err != nil {
		return dtos.PunchResponse{}, err
	}

	punchType := req.Type
	if punchType == "" {
		start, end := s.store.Today()
		punchType = NextPunchType(DutyStateOf(s.store.PunchesFor(staffID, start, end)))
	}

	candidate := models.PunchLog{
		StaffID:   staffID,
		Type:      punchType,
		Timestamp: s.store.Now().UnixMilli(),
	}

	wctx, cancel := context.WithTimeout(ctx, constants.RemoteWriteTimeout)
	defer cancel()

	rec := candidate
	if err := s.repo.Create(wctx, &rec); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"staff_id": staffID,
			"type":     punchType,
		}).Warn("Punch write failed; keeping local record")

		rec = candidate
		rec.ID = s.store.NewLocalID()
		rec.LocalOnly = true
	}
	s.store.PrependPunchLog(rec)

	return dtos.PunchResponse{Punch: rec, Status: s.Status(staffID)}, nil
}

// Status summarises staffID's attendance for the current day.
func (s *PunchService) Status(staffID int64) dtos.AttendanceStatus {
	start, end := s.store.Today()
	punches := s.store.PunchesFor(staffID, start, end)
	return s.statusFrom(staffID, punches, s.store.Now())
}

// Overview returns today's status for every staff member.
func (s *PunchService) Overview() dtos.AttendanceOverview {
	start, end := s.store.Today()
	now := s.store.Now()

	staff := s.store.Staff()
	out := dtos.AttendanceOverview{Total: len(staff), Staff: make([]dtos.AttendanceStatus, 0, len(staff))}
	for _, m := range staff {
		st := s.statusFrom(m.ID, s.store.PunchesFor(m.ID, start, end), now)
		st.Name = m.Name
		st.Avatar = m.Avatar
		if st.OnDuty {
			out.OnDuty++
		}
		out.Staff = append(out.Staff, st)
	}
	return out
}

func (s *PunchService) statusFrom(staffID int64, punches []models.PunchLog, now time.Time) dtos.AttendanceStatus {
	state := DutyStateOf(punches)
	worked := ComputeWorkedDuration(punches, now)

	st := dtos.AttendanceStatus{
		StaffID:       staffID,
		DutyState:     state,
		OnDuty:        state == models.DutyStateOn,
		Worked:        worked,
		WorkPercent:   WorkPercent(worked),
		NextPunchType: NextPunchType(state),
		Punches:       punches,
	}
	if st.Punches == nil {
		st.Punches = []models.PunchLog{}
	}
	if latest := latestPunch(punches); latest != nil {
		at := latest.At().In(s.store.Location())
		st.LastPunch = &at
	}
	return st
}

func (s *PunchService) checkGeofence(req dtos.PunchRequest) error {
	if !s.geofence.Enabled {
		return nil
	}
	if req.Latitude == nil || req.Longitude == nil {
		return utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeValidation,
			"Location is required to punch", internal_utils.ErrPunchOutsideSociety,
		)
	}
	if !internal_utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeLocationOutOfBounds,
			"Coordinates are out of range", internal_utils.ErrPunchOutsideSociety,
		)
	}
	if !internal_utils.WithinRadius(
		*req.Latitude, *req.Longitude,
		s.geofence.Latitude, s.geofence.Longitude, s.geofence.RadiusMeters,
	) {
		return utils.NewAppError(
			http.StatusBadRequest, internal_utils.ErrCodeOutsideSociety,
			"You must be inside the society to punch", internal_utils.ErrPunchOutsideSociety,
		)
	}
	return nil
}
