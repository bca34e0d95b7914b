package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/storage"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type ReportServiceImpl struct {
	reportRepo      report.ReportRepository
	fileStorage     storage.FileStorage
	exportURLExpiry time.Duration
	now             func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, fileStorage storage.FileStorage, exportURLExpiry time.Duration) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:      reportRepo,
		fileStorage:     fileStorage,
		exportURLExpiry: exportURLExpiry,
		now:             time.Now,
	}
}

// sheetInputs is everything besides the attendance map a sheet is rendered from.
type sheetInputs struct {
	employees          []employee.Detail
	defaultHolidayList *string
	holidays           holiday.Lists
	leaveTypes         []string
	summaries          map[string]attendance.Summary
	leaveSummaries     map[string]map[string]float64
	entryExits         map[string]attendance.EntryExitSummary
}

// GenerateMonthlyAttendanceSheet builds the monthly attendance sheet of a company
func (s *ReportServiceImpl) GenerateMonthlyAttendanceSheet(ctx context.Context, req report.MonthlyAttendanceSheetRequest) (report.MonthlyAttendanceSheet, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceSheet{}, err
	}

	filter := req.Period()
	sheet := report.MonthlyAttendanceSheet{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: filter.Start().Format(dateLayout),
		PeriodEnd:   filter.End().AddDate(0, 0, -1).Format(dateLayout),
		GeneratedAt: s.now().Format(time.RFC3339),
		Columns:     []report.Column{},
		Rows:        []report.Row{},
	}

	records, err := s.reportRepo.ListAttendanceRecords(ctx, filter)
	if err != nil {
		return report.MonthlyAttendanceSheet{}, fmt.Errorf("failed to get attendance records: %w", err)
	}

	attendanceMap := BuildAttendanceMap(records)
	if attendanceMap.IsEmpty() {
		slog.Info("no attendance records for monthly attendance sheet",
			"company_id", req.CompanyID, "month", req.Month, "year", req.Year)
		sheet.Notice = report.NoticeNoAttendance
		return sheet, nil
	}

	in, err := s.loadSheetInputs(ctx, req)
	if err != nil {
		return report.MonthlyAttendanceSheet{}, err
	}

	sheet.Columns = buildColumns(req, in.leaveTypes)

	rows, err := s.buildRows(ctx, req, attendanceMap, in)
	if err != nil {
		return report.MonthlyAttendanceSheet{}, err
	}
	if len(rows) == 0 {
		slog.Info("no rows matched monthly attendance sheet criteria",
			"company_id", req.CompanyID, "month", req.Month, "year", req.Year,
			"employee_id", req.EmployeeID, "group_by", req.GroupBy)
		sheet.Notice = report.NoticeNoMatchingRecords
		return sheet, nil
	}
	sheet.Rows = rows

	if !req.SummarizedView {
		sheet.Message = report.Legend()
		sheet.Chart = buildChart(attendanceMap, req.Year, req.Month)
	}

	return sheet, nil
}

// loadSheetInputs runs the independent lookups concurrently; the first failure cancels the rest.
func (s *ReportServiceImpl) loadSheetInputs(ctx context.Context, req report.MonthlyAttendanceSheetRequest) (*sheetInputs, error) {
	filter := req.Period()
	in := &sheetInputs{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		employees, err := s.reportRepo.ListEmployeeDetails(gctx, req.CompanyID, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee details: %w", err)
		}
		in.employees = employees
		return nil
	})
	g.Go(func() error {
		listID, err := s.reportRepo.GetDefaultHolidayListID(gctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to get default holiday list: %w", err)
		}
		in.defaultHolidayList = listID
		return nil
	})
	g.Go(func() error {
		holidays, err := s.reportRepo.ListHolidays(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to get holidays: %w", err)
		}
		in.holidays = holidays
		return nil
	})

	if req.SummarizedView {
		g.Go(func() error {
			leaveTypes, err := s.reportRepo.ListLeaveTypeNames(gctx, req.CompanyID)
			if err != nil {
				return fmt.Errorf("failed to get leave types: %w", err)
			}
			in.leaveTypes = leaveTypes
			return nil
		})
		g.Go(func() error {
			summaries, err := s.reportRepo.ListAttendanceSummaries(gctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get attendance summaries: %w", err)
			}
			in.summaries = summaries
			return nil
		})
		g.Go(func() error {
			leaveSummaries, err := s.reportRepo.ListLeaveSummaries(gctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get leave summaries: %w", err)
			}
			in.leaveSummaries = leaveSummaries
			return nil
		})
		g.Go(func() error {
			entryExits, err := s.reportRepo.ListEntryExitSummaries(gctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get entry exit summaries: %w", err)
			}
			in.entryExits = entryExits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *ReportServiceImpl) buildRows(ctx context.Context, req report.MonthlyAttendanceSheetRequest, attendanceMap *AttendanceMap, in *sheetInputs) ([]report.Row, error) {
	if req.GroupBy == "" {
		return s.employeeRows(ctx, req, in.employees, attendanceMap, in)
	}

	var rows []report.Row
	for _, group := range groupEmployees(in.employees, req.GroupBy) {
		groupRows, err := s.employeeRows(ctx, req, group.Employees, attendanceMap, in)
		if err != nil {
			return nil, err
		}
		if len(groupRows) == 0 {
			continue
		}
		rows = append(rows, &report.GroupHeaderRow{Field: req.GroupBy.FieldName(), Value: group.Value})
		rows = append(rows, groupRows...)
	}
	return rows, nil
}

func (s *ReportServiceImpl) employeeRows(ctx context.Context, req report.MonthlyAttendanceSheetRequest, employees []employee.Detail, attendanceMap *AttendanceMap, in *sheetInputs) ([]report.Row, error) {
	filter := req.Period()
	var rows []report.Row

	for _, emp := range employees {
		calendar := in.holidays.For(emp.HolidayListID, in.defaultHolidayList)

		if req.SummarizedView {
			if row := summaryRow(filter, emp, in, calendar); row != nil {
				rows = append(rows, row)
			}
			continue
		}

		if !attendanceMap.Has(emp.ID) {
			continue
		}
		empRows, err := s.detailedRows(ctx, filter, emp, attendanceMap.Shifts(emp.ID), calendar)
		if err != nil {
			return nil, err
		}
		rows = append(rows, empRows...)
	}

	return rows, nil
}

// GetAttendanceYears lists the years with attendance, newest first, falling back to the current year
func (s *ReportServiceImpl) GetAttendanceYears(ctx context.Context, companyID string) (report.AttendanceYears, error) {
	if companyID == "" {
		return report.AttendanceYears{}, report.ErrCompanyRequired
	}

	years, err := s.reportRepo.ListAttendanceYears(ctx, companyID)
	if err != nil {
		return report.AttendanceYears{}, fmt.Errorf("failed to get attendance years: %w", err)
	}
	if len(years) == 0 {
		years = []int{s.now().Year()}
	}

	return report.AttendanceYears{Years: years}, nil
}
