package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
)

func buildColumns(req report.MonthlyAttendanceSheetRequest, leaveTypes []string) []report.Column {
	var columns []report.Column

	if req.GroupBy != "" {
		columns = append(columns, report.Column{
			Label:     string(req.GroupBy),
			FieldName: req.GroupBy.FieldName(),
			FieldType: report.FieldTypeLink,
			Options:   req.GroupBy.LinkOptions(),
			Width:     120,
		})
	}

	columns = append(columns,
		report.Column{Label: "Employee", FieldName: "employee", FieldType: report.FieldTypeLink, Options: "Employee", Width: 135},
		report.Column{Label: "Employee Name", FieldName: "employee_name", FieldType: report.FieldTypeData, Width: 120},
	)

	if req.SummarizedView {
		columns = append(columns,
			report.Column{Label: "Total Present", FieldName: "total_present", FieldType: report.FieldTypeFloat, Width: 110},
			report.Column{Label: "Total Leaves", FieldName: "total_leaves", FieldType: report.FieldTypeFloat, Width: 110},
			report.Column{Label: "Total Absent", FieldName: "total_absent", FieldType: report.FieldTypeFloat, Width: 110},
			report.Column{Label: "Total Holidays", FieldName: "total_holidays", FieldType: report.FieldTypeFloat, Width: 120},
			report.Column{Label: "Unmarked Days", FieldName: "unmarked_days", FieldType: report.FieldTypeFloat, Width: 130},
		)
		columns = append(columns, leaveTypeColumns(leaveTypes)...)
		columns = append(columns,
			report.Column{Label: "Total Late Entries", FieldName: "total_late_entries", FieldType: report.FieldTypeFloat, Width: 140},
			report.Column{Label: "Total Early Exits", FieldName: "total_early_exits", FieldType: report.FieldTypeFloat, Width: 140},
		)
		return columns
	}

	columns = append(columns, report.Column{Label: "Shift", FieldName: "shift", FieldType: report.FieldTypeData, Width: 120})
	return append(columns, dayColumns(req.Year, req.Month)...)
}

func leaveTypeColumns(leaveTypes []string) []report.Column {
	columns := make([]report.Column, 0, len(leaveTypes))
	for _, name := range leaveTypes {
		columns = append(columns, report.Column{
			Label:     name,
			FieldName: report.FieldName(name),
			FieldType: report.FieldTypeFloat,
			Width:     120,
		})
	}
	return columns
}

// dayColumns returns one column per calendar day labelled like "5 Fri".
func dayColumns(year, month int) []report.Column {
	days := report.DaysInMonth(year, month)
	columns := make([]report.Column, 0, days)
	for day := 1; day <= days; day++ {
		weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("Mon")
		columns = append(columns, report.Column{
			Label:     fmt.Sprintf("%d %s", day, weekday),
			FieldName: fmt.Sprint(day),
			FieldType: report.FieldTypeData,
			Width:     125,
		})
	}
	return columns
}
