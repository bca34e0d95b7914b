package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/validator"
)

type ReportHandler interface {
	// Monthly Attendance Sheet
	GetMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request)
	ExportMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request)
	ArchiveMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request)

	// Attendance years for the period picker
	GetAttendanceYears(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyAttendanceSheet handles GET /reports/monthly-attendance-sheet
func (h *reportHandlerImpl) GetMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	req, err := parseSheetRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateMonthlyAttendanceSheet(r.Context(), req)
	if err != nil {
		handleReportError(w, "failed to generate monthly attendance sheet", req, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyAttendanceSheet handles GET /reports/monthly-attendance-sheet/export
func (h *reportHandlerImpl) ExportMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	req, err := parseSheetRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportMonthlyAttendanceSheet(r.Context(), req)
	if err != nil {
		handleReportError(w, "failed to export monthly attendance sheet", req, err)
		return
	}

	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}

// ArchiveMonthlyAttendanceSheet handles POST /reports/monthly-attendance-sheet/archive
func (h *reportHandlerImpl) ArchiveMonthlyAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	req, err := parseSheetRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	archived, err := h.reportService.ArchiveMonthlyAttendanceSheet(r.Context(), req)
	if err != nil {
		handleReportError(w, "failed to archive monthly attendance sheet", req, err)
		return
	}

	response.Created(w, "Monthly attendance sheet archived", archived)
}

// GetAttendanceYears handles GET /reports/attendance-years
func (h *reportHandlerImpl) GetAttendanceYears(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r)
	if !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	years, err := h.reportService.GetAttendanceYears(r.Context(), companyID)
	if err != nil {
		slog.Error("failed to get attendance years", "company_id", companyID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, years)
}

// parseSheetRequest reads the sheet filters from the query string; the company comes from the token.
// A missing month or year is left at zero so validation reports it.
func parseSheetRequest(r *http.Request) (report.MonthlyAttendanceSheetRequest, error) {
	companyID, ok := middleware.CompanyID(r)
	if !ok {
		return report.MonthlyAttendanceSheetRequest{}, user.ErrCompanyIDRequired
	}

	query := r.URL.Query()
	req := report.MonthlyAttendanceSheetRequest{
		CompanyID:  companyID,
		EmployeeID: query.Get("employee"),
		GroupBy:    employee.GroupBy(query.Get("group_by")),
	}

	var errs validator.ValidationErrors
	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
		req.Month = month
	}
	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
		req.Year = year
	}
	if v := query.Get("summarized_view"); v != "" {
		summarized, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "summarized_view", Message: "summarized_view must be a boolean"})
		}
		req.SummarizedView = summarized
	}
	if len(errs) > 0 {
		return report.MonthlyAttendanceSheetRequest{}, errs
	}

	return req, nil
}

func handleReportError(w http.ResponseWriter, msg string, req report.MonthlyAttendanceSheetRequest, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		slog.Error(msg,
			"company_id", req.CompanyID, "month", req.Month, "year", req.Year,
			"summarized_view", req.SummarizedView, "error", err)
	}
	response.HandleError(w, err)
}
