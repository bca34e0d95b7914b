package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// Generate Monthly Attendance Sheet
	GenerateMonthlyAttendanceSheet(ctx context.Context, req MonthlyAttendanceSheetRequest) (MonthlyAttendanceSheet, error)

	// Render the sheet as an XLSX workbook
	ExportMonthlyAttendanceSheet(ctx context.Context, req MonthlyAttendanceSheetRequest) (ExportFile, error)

	// Render the sheet and keep it in file storage
	ArchiveMonthlyAttendanceSheet(ctx context.Context, req MonthlyAttendanceSheetRequest) (ArchivedExport, error)

	// Years that have attendance for the company
	GetAttendanceYears(ctx context.Context, companyID string) (AttendanceYears, error)
}
