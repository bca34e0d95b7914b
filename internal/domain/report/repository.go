package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
)

// ReportRepository defines the read model the monthly attendance sheet is built from
type ReportRepository interface {
	// Submitted attendance of the period, ordered by employee then date
	ListAttendanceRecords(ctx context.Context, filter PeriodFilter) ([]attendance.Record, error)

	// Clock in/out of one employee day, nil when no row carries times
	GetAttendanceTimeLog(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.TimeLog, error)

	// Employees of the company (optionally a single one)
	ListEmployeeDetails(ctx context.Context, companyID, employeeID string) ([]employee.Detail, error)

	// Company level fallback holiday list
	GetDefaultHolidayListID(ctx context.Context, companyID string) (*string, error)

	// Holidays of the month for every holiday list the company can use
	ListHolidays(ctx context.Context, filter PeriodFilter) (holiday.Lists, error)

	// Leave type names of the company, ordered by name
	ListLeaveTypeNames(ctx context.Context, companyID string) ([]string, error)

	// Summarized view aggregates keyed by employee id
	ListAttendanceSummaries(ctx context.Context, filter PeriodFilter) (map[string]attendance.Summary, error)
	ListLeaveSummaries(ctx context.Context, filter PeriodFilter) (map[string]map[string]float64, error)
	ListEntryExitSummaries(ctx context.Context, filter PeriodFilter) (map[string]attendance.EntryExitSummary, error)

	// Distinct years with attendance, newest first
	ListAttendanceYears(ctx context.Context, companyID string) ([]int, error)
}
