package report

import (
	"slices"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
)

// summaryRow totals one employee's month. It returns nil for an employee without
// any present, absent, leave or half day attendance.
func summaryRow(filter report.PeriodFilter, emp employee.Detail, in *sheetInputs, calendar holiday.Calendar) *report.SummaryRow {
	summary := in.summaries[emp.ID]
	if !summary.HasActivity() {
		return nil
	}

	row := &report.SummaryRow{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName,
		TotalPresent:  summary.TotalPresent + summary.TotalHalfDays,
		TotalLeaves:   summary.TotalLeaves + summary.TotalHalfDays,
		TotalAbsent:   summary.TotalAbsent,
		TotalHolidays: float64(summary.RecordedHolidays),
		LeaveDays:     make(map[string]float64, len(in.leaveTypes)),
	}

	for day := 1; day <= filter.DaysInMonth(); day++ {
		if slices.Contains(summary.Days, day) {
			continue
		}
		switch calendar.StatusOn(day) {
		case attendance.StatusWeeklyOff, attendance.StatusHoliday:
			row.TotalHolidays++
		default:
			row.UnmarkedDays++
		}
	}

	for _, name := range in.leaveTypes {
		row.LeaveDays[report.FieldName(name)] = 0
	}
	for name, days := range in.leaveSummaries[emp.ID] {
		row.LeaveDays[report.FieldName(name)] = days
	}

	entryExit := in.entryExits[emp.ID]
	row.TotalLateEntries = float64(entryExit.TotalLateEntries)
	row.TotalEarlyExits = float64(entryExit.TotalEarlyExits)

	return row
}
