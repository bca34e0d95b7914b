package report

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE SHEET
// ========================================

type MonthlyAttendanceSheetRequest struct {
	CompanyID      string           `json:"company" validate:"required,uuid"`
	Month          int              `json:"month" validate:"min=1,max=12"`
	Year           int              `json:"year" validate:"min=1900,max=9999"`
	EmployeeID     string           `json:"employee" validate:"omitempty,uuid"`
	GroupBy        employee.GroupBy `json:"group_by" validate:"omitempty,oneof=Branch Grade Department Designation"`
	SummarizedView bool             `json:"summarized_view"`
}

func (r *MonthlyAttendanceSheetRequest) Validate() error {
	if r.Month == 0 || r.Year == 0 {
		return validator.ValidationErrors{
			{Field: "month", Message: ErrMonthYearRequired.Error()},
			{Field: "year", Message: ErrMonthYearRequired.Error()},
		}
	}
	return validator.Struct(r)
}

// Period returns the reporting filter of the request.
func (r *MonthlyAttendanceSheetRequest) Period() PeriodFilter {
	return PeriodFilter{
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		Month:      r.Month,
		Year:       r.Year,
	}
}

// PeriodFilter scopes repository reads to one company month.
type PeriodFilter struct {
	CompanyID  string
	EmployeeID string
	Month      int
	Year       int
}

// Start is the first day of the month.
func (f PeriodFilter) Start() time.Time {
	return time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first day of the following month (exclusive bound).
func (f PeriodFilter) End() time.Time {
	return f.Start().AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days of the month.
func (f PeriodFilter) DaysInMonth() int {
	return DaysInMonth(f.Year, f.Month)
}

func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Notices returned in place of rows.
const (
	NoticeNoAttendance      = "No attendance records found."
	NoticeNoMatchingRecords = "No attendance records found for this criteria."
)

type MonthlyAttendanceSheet struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Columns []Column   `json:"columns"`
	Rows    []Row      `json:"rows"`
	Message string     `json:"message"`
	Chart   *ChartData `json:"chart,omitempty"`
	// Notice is an informational message for an empty report.
	Notice string `json:"notice,omitempty"`
}

type FieldType string

const (
	FieldTypeData  FieldType = "Data"
	FieldTypeLink  FieldType = "Link"
	FieldTypeFloat FieldType = "Float"
)

type Column struct {
	Label     string    `json:"label"`
	FieldName string    `json:"fieldname"`
	FieldType FieldType `json:"fieldtype"`
	Options   string    `json:"options,omitempty"`
	Width     int       `json:"width"`
}

type ChartData struct {
	Data   ChartSeries `json:"data"`
	Type   string      `json:"type"`
	Colors []string    `json:"colors"`
}

type ChartSeries struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ========================================
// ATTENDANCE YEARS
// ========================================

type AttendanceYears struct {
	Years []int `json:"years"`
}

// ========================================
// EXPORT
// ========================================

// ExportFile is a rendered spreadsheet ready to be streamed or archived.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ArchivedExport points at an export kept in file storage.
type ArchivedExport struct {
	Path      string `json:"path"`
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
