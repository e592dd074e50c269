package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

func TestPunchToggles(t *testing.T) {
	f := newFixture(t)
	f.clock.Current = time.Date(2024, time.March, 15, 9, 0, 0, 0, f.store.Location())
	svc := NewPunchService(f.store, f.punches, Geofence{})

	resp, err := svc.Punch(context.Background(), 1, dtos.PunchRequest{})
	require.NoError(t, err)
	require.Equal(t, models.PunchTypeIn, resp.Punch.Type)
	require.True(t, resp.Status.OnDuty)
	require.Equal(t, models.PunchTypeOut, resp.Status.NextPunchType)

	f.clock.Advance(4 * time.Hour)
	resp, err = svc.Punch(context.Background(), 1, dtos.PunchRequest{})
	require.NoError(t, err)
	require.Equal(t, models.PunchTypeOut, resp.Punch.Type)
	require.False(t, resp.Status.OnDuty)
	require.Equal(t, dtos.WorkedDuration{Hours: 4}, resp.Status.Worked)
	require.Equal(t, 50, resp.Status.WorkPercent)
	require.Len(t, resp.Status.Punches, 2)

	overview := svc.Overview()
	require.Equal(t, 2, overview.Total)
	require.Zero(t, overview.OnDuty)
	require.Equal(t, "Rina", overview.Staff[0].Name)
}

func TestPunchExplicitTypeIsNotValidated(t *testing.T) {
	f := newFixture(t)
	svc := NewPunchService(f.store, f.punches, Geofence{})

	for i := 0; i < 2; i++ {
		resp, err := svc.Punch(context.Background(), 2, dtos.PunchRequest{Type: models.PunchTypeIn})
		require.NoError(t, err)
		require.Equal(t, models.PunchTypeIn, resp.Punch.Type)
	}
	require.Len(t, f.punches.Punches, 2)
}

func TestPunchRemoteFailureKeepsLocalRecord(t *testing.T) {
	f := newFixture(t)
	svc := NewPunchService(f.store, f.punches, Geofence{})

	f.punches.Fail = true
	resp, err := svc.Punch(context.Background(), 1, dtos.PunchRequest{})
	require.NoError(t, err)
	require.True(t, resp.Punch.LocalOnly)
	require.True(t, utils.IsLocalID(resp.Punch.ID))
	require.Equal(t, models.DutyStateOn, svc.Status(1).DutyState)
}

func TestPunchGeofence(t *testing.T) {
	f := newFixture(t)
	svc := NewPunchService(f.store, f.punches, Geofence{Enabled: true, Latitude: 22.5726, Longitude: 88.3639})

	_, err := svc.Punch(context.Background(), 1, dtos.PunchRequest{})
	require.True(t, errors.Is(err, internal_utils.ErrPunchOutsideSociety), "coordinates are required")

	_, err = svc.Punch(context.Background(), 1, dtos.PunchRequest{
		Latitude: utils.Ptr(22.6500), Longitude: utils.Ptr(88.4500),
	})
	require.True(t, errors.Is(err, internal_utils.ErrPunchOutsideSociety))

	resp, err := svc.Punch(context.Background(), 1, dtos.PunchRequest{
		Latitude: utils.Ptr(22.5730), Longitude: utils.Ptr(88.3640),
	})
	require.NoError(t, err)
	require.Equal(t, models.PunchTypeIn, resp.Punch.Type)
	require.Len(t, f.punches.Punches, 1)
}
