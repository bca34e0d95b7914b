package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
)

// detailedRows renders one row per shift of the employee. The first row carries the
// employee id and name.
func (s *ReportServiceImpl) detailedRows(ctx context.Context, filter report.PeriodFilter, emp employee.Detail, shifts []*ShiftAttendance, calendar holiday.Calendar) ([]report.Row, error) {
	days := filter.DaysInMonth()
	rows := make([]report.Row, 0, len(shifts))

	for i, shift := range shifts {
		row := &report.DetailedRow{Shift: shift.Name, Cells: make([]report.Cell, days)}
		if i == 0 {
			row.EmployeeID = emp.ID
			row.EmployeeName = emp.FullName
		}

		for day := 1; day <= days; day++ {
			entry, ok := shift.Days[day]
			if !ok {
				row.Cells[day-1] = report.Cell{Status: calendar.StatusOn(day)}
				continue
			}

			cell, err := s.detailedCell(ctx, filter, emp.ID, day, entry)
			if err != nil {
				return nil, err
			}
			row.Cells[day-1] = cell
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *ReportServiceImpl) detailedCell(ctx context.Context, filter report.PeriodFilter, employeeID string, day int, entry DayAttendance) (report.Cell, error) {
	cell := report.Cell{Status: entry.Status, LeaveType: entry.LeaveType}
	inTime, outTime := entry.InTime, entry.OutTime

	if entry.Status == attendance.StatusHalfDay && (inTime == nil || outTime == nil) {
		date := time.Date(filter.Year, time.Month(filter.Month), day, 0, 0, 0, 0, time.UTC)
		timeLog, err := s.reportRepo.GetAttendanceTimeLog(ctx, filter.CompanyID, employeeID, date)
		if err != nil {
			return report.Cell{}, fmt.Errorf("failed to get half day time log: %w", err)
		}
		if timeLog != nil {
			inTime, outTime = timeLog.InTime, timeLog.OutTime
		}
	}

	cell.Duration = workedDuration(inTime, outTime)
	if entry.Status == attendance.StatusHalfDay && cell.Duration == "" {
		cell.Duration = report.DefaultHalfDayDuration
	}
	return cell, nil
}

// workedDuration formats out-in as HH:MM, "" when either is missing or out precedes in.
func workedDuration(inTime, outTime *time.Time) string {
	if inTime == nil || outTime == nil {
		return ""
	}
	d := outTime.Sub(*inTime)
	if d < 0 {
		return ""
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
