package report

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
)

// fakeReportRepository serves fixed data and records which lookups ran.
type fakeReportRepository struct {
	records            []attendance.Record
	timeLogs           map[string]*attendance.TimeLog // keyed by employee id + date
	employees          []employee.Detail
	defaultHolidayList *string
	holidays           holiday.Lists
	leaveTypes         []string
	summaries          map[string]attendance.Summary
	leaveSummaries     map[string]map[string]float64
	entryExits         map[string]attendance.EntryExitSummary
	years              []int
	errs               map[string]error

	mu    sync.Mutex
	calls []string
}

var _ report.ReportRepository = (*fakeReportRepository)(nil)

func (f *fakeReportRepository) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeReportRepository) called(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func timeLogKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeReportRepository) ListAttendanceRecords(ctx context.Context, filter report.PeriodFilter) ([]attendance.Record, error) {
	if err := f.record("ListAttendanceRecords"); err != nil {
		return nil, err
	}
	var out []attendance.Record
	for _, r := range f.records {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReportRepository) GetAttendanceTimeLog(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.TimeLog, error) {
	if err := f.record("GetAttendanceTimeLog"); err != nil {
		return nil, err
	}
	return f.timeLogs[timeLogKey(employeeID, date)], nil
}

func (f *fakeReportRepository) ListEmployeeDetails(ctx context.Context, companyID, employeeID string) ([]employee.Detail, error) {
	if err := f.record("ListEmployeeDetails"); err != nil {
		return nil, err
	}
	var out []employee.Detail
	for _, e := range f.employees {
		if employeeID != "" && e.ID != employeeID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeReportRepository) GetDefaultHolidayListID(ctx context.Context, companyID string) (*string, error) {
	if err := f.record("GetDefaultHolidayListID"); err != nil {
		return nil, err
	}
	return f.defaultHolidayList, nil
}

func (f *fakeReportRepository) ListHolidays(ctx context.Context, filter report.PeriodFilter) (holiday.Lists, error) {
	if err := f.record("ListHolidays"); err != nil {
		return nil, err
	}
	return f.holidays, nil
}

func (f *fakeReportRepository) ListLeaveTypeNames(ctx context.Context, companyID string) ([]string, error) {
	if err := f.record("ListLeaveTypeNames"); err != nil {
		return nil, err
	}
	return f.leaveTypes, nil
}

func (f *fakeReportRepository) ListAttendanceSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]attendance.Summary, error) {
	if err := f.record("ListAttendanceSummaries"); err != nil {
		return nil, err
	}
	return f.summaries, nil
}

func (f *fakeReportRepository) ListLeaveSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]map[string]float64, error) {
	if err := f.record("ListLeaveSummaries"); err != nil {
		return nil, err
	}
	return f.leaveSummaries, nil
}

func (f *fakeReportRepository) ListEntryExitSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]attendance.EntryExitSummary, error) {
	if err := f.record("ListEntryExitSummaries"); err != nil {
		return nil, err
	}
	return f.entryExits, nil
}

func (f *fakeReportRepository) ListAttendanceYears(ctx context.Context, companyID string) ([]int, error) {
	if err := f.record("ListAttendanceYears"); err != nil {
		return nil, err
	}
	return f.years, nil
}
