package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

type stubRater struct {
	rating *ProofRating
	err    error
	calls  int
}

func (s *stubRater) RateProof(context.Context, string, models.TaskDefinition) (*ProofRating, error) {
	s.calls++
	return s.rating, s.err
}

func newTaskLogService(f *fixture, rater ProofRater) *TaskLogService {
	return NewTaskLogService(f.store, f.tasks, models.DefaultTopology(), models.DefaultCatalog(), rater)
}

func flatRequest(block, floor int, flat string) dtos.LogTaskRequest {
	b, fl, fa := loc(block, floor, flat)
	return dtos.LogTaskRequest{TaskID: models.TaskTypeRoutineHousekeeping, Block: b, Floor: fl, Flat: fa}
}

func TestLogTaskRemoteSuccess(t *testing.T) {
	f := newFixture(t)
	svc := newTaskLogService(f, nil)

	rec, err := svc.LogTask(context.Background(), 1, flatRequest(1, 3, "a"))
	require.NoError(t, err)
	require.Equal(t, "tl-1", rec.ID)
	require.False(t, rec.LocalOnly)
	require.Equal(t, models.TaskLogStatusCompleted, rec.Status)
	require.Equal(t, "A", *rec.Flat)
	require.Equal(t, f.clock.Current.UnixMilli(), rec.Timestamp)

	logs := f.store.TaskLogs()
	require.Len(t, logs, 1)
	require.Equal(t, rec, logs[0])
}

func TestLogTaskRemoteFailureKeepsLocalRecordAtFront(t *testing.T) {
	f := newFixture(t)
	svc := newTaskLogService(f, nil)

	first, err := svc.LogTask(context.Background(), 1, flatRequest(1, 1, "A"))
	require.NoError(t, err)

	f.tasks.Fail = true
	f.clock.Advance(time.Minute)
	rec, err := svc.LogTask(context.Background(), 2, flatRequest(1, 1, "B"))
	require.NoError(t, err)

	require.True(t, rec.LocalOnly)
	require.NotEmpty(t, rec.ID)
	require.True(t, strings.HasPrefix(rec.ID, utils.LocalIDPrefix))
	require.NotEqual(t, first.ID, rec.ID)

	logs := f.store.TaskLogs()
	require.Len(t, logs, 2)
	require.Equal(t, rec.ID, logs[0].ID)
	require.Equal(t, first.ID, logs[1].ID)
}

func TestLogTaskRejectsInvalidInputBeforeRemoteCall(t *testing.T) {
	f := newFixture(t)
	svc := newTaskLogService(f, nil)
	b, fl, _ := loc(1, 1, "")

	broomWithFlat := flatRequest(1, 1, "A")
	broomWithFlat.TaskID = models.TaskTypeBrooming

	cases := map[string]struct {
		req  dtos.LogTaskRequest
		want error
	}{
		"unknown task":         {dtos.LogTaskRequest{TaskID: "Window Polishing"}, internal_utils.ErrUnknownTaskType},
		"flat task no flat":    {dtos.LogTaskRequest{TaskID: models.TaskTypeRoutineHousekeeping, Block: b, Floor: fl}, internal_utils.ErrInvalidLocation},
		"flat not in topology": {flatRequest(2, 1, "F"), internal_utils.ErrInvalidLocation},
		"floor out of range":   {flatRequest(1, 13, "A"), internal_utils.ErrInvalidLocation},
		"common with block":    {dtos.LogTaskRequest{TaskID: models.TaskTypeDrivewayBroom, Block: b}, internal_utils.ErrInvalidLocation},
		"floor task with flat": {broomWithFlat, internal_utils.ErrInvalidLocation},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.LogTask(context.Background(), 1, tc.req)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want))

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr))
			require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		})
	}
	require.Zero(t, f.tasks.Creates)
	require.Empty(t, f.store.TaskLogs())
}

func TestLogTaskAttachesProofRating(t *testing.T) {
	f := newFixture(t)
	rater := &stubRater{rating: &ProofRating{Rating: 8, Feedback: "Clean floor, bin emptied."}}
	svc := newTaskLogService(f, rater)

	req := flatRequest(1, 1, "A")
	req.ImageURL = utils.Ptr("https://storage.googleapis.com/proofs/a.jpg")
	rec, err := svc.LogTask(context.Background(), 1, req)
	require.NoError(t, err)
	require.Equal(t, 1, rater.calls)
	require.Equal(t, 8.0, *rec.AIRating)
	require.Equal(t, "Clean floor, bin emptied.", *rec.AIFeedback)

	rater.err = errors.New("rate limited")
	rec, err = svc.LogTask(context.Background(), 1, req)
	require.NoError(t, err, "a rating failure never blocks the log")
	require.Nil(t, rec.AIRating)

	_, err = svc.LogTask(context.Background(), 1, flatRequest(1, 2, "A"))
	require.NoError(t, err)
	require.Equal(t, 2, rater.calls, "no image, no rating")
}

func TestTodaysLogs(t *testing.T) {
	f := newFixture(t)
	f.store.PrependTaskLog(models.TaskLog{ID: "yesterday", Timestamp: f.clock.Current.AddDate(0, 0, -1).UnixMilli()})
	f.store.PrependTaskLog(models.TaskLog{ID: "today", Timestamp: f.ms(7, 0)})

	logs := newTaskLogService(f, nil).TodaysLogs()
	require.Len(t, logs, 1)
	require.Equal(t, "today", logs[0].ID)
}
