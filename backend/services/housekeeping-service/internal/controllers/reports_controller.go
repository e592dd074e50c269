package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsController struct {
	reportService *services.ReportService
	loc           *time.Location
	now           func() time.Time
}

func NewReportsController(s *services.ReportService, loc *time.Location, now func() time.Time) *ReportsController {
	if now == nil {
		now = time.Now
	}
	return &ReportsController{reportService: s, loc: loc, now: now}
}

// GET /api/v1/reports/daily.xlsx[?date=YYYY-MM-DD]
func (c *ReportsController) DailyHandler(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(w, r, c.loc)
	if !ok {
		return
	}
	if day.IsZero() {
		day = c.now().In(c.loc)
	}

	wb, err := c.reportService.DailyReport(r.Context(), day)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to build report", nil, err)
		return
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			utils.Logger.WithError(cerr).Warn("Failed to close report workbook")
		}
	}()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=\"housekeeping-%s.xlsx\"", day.Format(dateParamLayout)),
	)
	if _, err := wb.WriteTo(w); err != nil {
		utils.Logger.WithError(err).Error("Failed to stream report")
	}
}
