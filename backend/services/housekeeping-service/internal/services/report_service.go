package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheetSummary    = "Summary"
	reportSheetTaskLogs   = "Task Logs"
	reportSheetAttendance = "Attendance"
)

type ReportService struct {
	store    *ActivityStore
	progress *ProgressService
	catalog  models.TaskCatalog
}

func NewReportService(store *ActivityStore, progress *ProgressService, catalog models.TaskCatalog) *ReportService {
	return &ReportService{store: store, progress: progress, catalog: catalog}
}

// DailyReport builds a workbook for the local day containing day.
func (s *ReportService) DailyReport(ctx context.Context, day time.Time) (*excelize.File, error) {
	loc := s.store.Location()
	start, end := DayBounds(day, loc)
	logs := s.store.TaskLogsBetween(start, end)
	progress := s.progress.DailyOn(ctx, start)

	names := map[int64]string{}
	staff := s.store.Staff()
	for _, m := range staff {
		names[m.ID] = m.Name
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{reportSheetTaskLogs, reportSheetAttendance} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	// Summary
	summary := [][]any{
		{"Date", progress.Date},
		{"Holiday", progress.Holiday},
		{"Expected", progress.TotalExpected},
		{"Completed", progress.TotalCompleted},
		{"Percent", progress.Percent},
		{"Billing data loaded", progress.ActiveFlatsLoaded},
		{},
		{"Category", "Done", "Total"},
	}
	for _, c := range s.catalog.Categories() {
		cc := progress.Categories[c]
		summary = append(summary, []any{string(c), cc.Done, cc.Total})
	}
	if err := writeRows(f, reportSheetSummary, summary); err != nil {
		return nil, err
	}

	// Task logs, oldest first
	rows := [][]any{{"Time", "Staff", "Task", "Category", "Location", "Status", "AI Rating", "Local Only"}}
	for i := len(logs) - 1; i >= 0; i-- {
		l := logs[i]
		staffName := names[l.StaffID]
		if staffName == "" {
			staffName = strconv.FormatInt(l.StaffID, 10)
		}
		rating := ""
		if l.AIRating != nil {
			rating = strconv.FormatFloat(*l.AIRating, 'f', 1, 64)
		}
		rows = append(rows, []any{
			l.At().In(loc).Format("15:04"),
			staffName,
			l.TaskID,
			string(s.catalog.CategoryOf(l.TaskID)),
			describeLocation(l),
			string(l.Status),
			rating,
			l.LocalOnly,
		})
	}
	if err := writeRows(f, reportSheetTaskLogs, rows); err != nil {
		return nil, err
	}

	// Attendance
	asOf := s.store.Now()
	if asOf.After(end) {
		asOf = end
	}
	rows = [][]any{{"Staff", "Punches", "First In", "Last Punch", "Worked", "Duty State"}}
	for _, m := range staff {
		punches := s.store.PunchesFor(m.ID, start, end)
		firstIn, last := "", ""
		for i := len(punches) - 1; i >= 0; i-- {
			if punches[i].Type == models.PunchTypeIn {
				firstIn = punches[i].At().In(loc).Format("15:04")
				break
			}
		}
		if lp := latestPunch(punches); lp != nil {
			last = fmt.Sprintf("%s %s", lp.Type, lp.At().In(loc).Format("15:04"))
		}
		worked := ComputeWorkedDuration(punches, asOf)
		rows = append(rows, []any{
			m.Name,
			len(punches),
			firstIn,
			last,
			fmt.Sprintf("%dh %02dm", worked.Hours, worked.Minutes),
			string(DutyStateOf(punches)),
		})
	}
	if err := writeRows(f, reportSheetAttendance, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeLocation(l models.TaskLog) string {
	switch {
	case l.HasFullLocation():
		key, _ := l.FlatKey()
		return "Flat " + key
	case l.Block != nil && l.Floor != nil:
		return fmt.Sprintf("Block %d, Floor %d", *l.Block, *l.Floor)
	case l.Block != nil:
		return fmt.Sprintf("Block %d", *l.Block)
	}
	return "Common area"
}
