package services

import (
	"context"
	"testing"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-testhelpers"
	"github.com/stretchr/testify/require"
)

func TestDailyReport(t *testing.T) {
	f := newFixture(t)
	f.store.PrependPunchLog(punch(models.PunchTypeIn, testhelpers.At(8, 30)))
	f.store.PrependTaskLog(completed(models.TaskTypeRoutineHousekeeping, 1, 2, "D"))
	f.store.PrependTaskLog(completed(models.TaskTypeDrivewayBroom, 0, 0, ""))

	progress := newProgressService(f, nil)
	report := NewReportService(f.store, progress, models.DefaultCatalog())

	wb, err := report.DailyReport(context.Background(), f.clock.Now())
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{"Summary", "Task Logs", "Attendance"}, wb.GetSheetList())

	date, err := wb.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", date)

	rows, err := wb.GetRows("Task Logs")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Time", rows[0][0])
	require.Equal(t, models.TaskTypeRoutineHousekeeping, rows[1][2])
	require.Equal(t, "Flat 1D2", rows[1][4])
	require.Equal(t, "Rina", rows[2][1])

	rows, err = wb.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Rina", "1", "08:30", "IN 08:30", "1h 30m", "ON_DUTY"}, rows[1])
	require.Equal(t, "OFF_DUTY", rows[2][5])
}
