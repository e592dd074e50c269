package services

import (
	"context"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-testhelpers"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

type fixture struct {
	clock   *testhelpers.Clock
	staff   *testhelpers.FakeStaffRepo
	tasks   *testhelpers.FakeTaskLogRepo
	punches *testhelpers.FakePunchLogRepo
	supply  *testhelpers.FakeSupplyRequestRepo
	store   *ActivityStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock: &testhelpers.Clock{Current: testhelpers.At(10, 0)},
		staff: &testhelpers.FakeStaffRepo{Staff: []*models.StaffMember{
			{ID: 1, Name: "Rina", Role: models.StaffRoleHousekeeper, BlockAssignment: "1-2"},
			{ID: 2, Name: "Bapi", Role: models.StaffRoleHousekeeper, BlockAssignment: "3-4"},
		}},
		tasks:   &testhelpers.FakeTaskLogRepo{},
		punches: &testhelpers.FakePunchLogRepo{},
		supply:  &testhelpers.FakeSupplyRequestRepo{},
	}
	f.store = NewActivityStore(f.staff, f.tasks, f.punches, f.supply, testhelpers.IST, f.clock.Now)
	f.store.Refresh(context.Background())
	return f
}

func (f *fixture) ms(hour, minute int) int64 {
	return testhelpers.At(hour, minute).UnixMilli()
}

func loc(block, floor int, flat string) (*int, *int, *string) {
	var fl *string
	if flat != "" {
		fl = utils.Ptr(flat)
	}
	return utils.Ptr(block), utils.Ptr(floor), fl
}

func completed(taskID string, block, floor int, flat string) models.TaskLog {
	l := models.TaskLog{
		TaskID:    taskID,
		StaffID:   1,
		Timestamp: testhelpers.At(9, 0).UnixMilli(),
		Status:    models.TaskLogStatusCompleted,
	}
	if block > 0 {
		l.Block, l.Floor, l.Flat = loc(block, floor, flat)
		if floor == 0 {
			l.Floor = nil
		}
	}
	return l
}

func punch(typ models.PunchType, at time.Time) models.PunchLog {
	return models.PunchLog{StaffID: 1, Type: typ, Timestamp: at.UnixMilli()}
}
