package report

import (
	"encoding/json"
	"strconv"
)

type RowKind string

const (
	RowKindGroupHeader RowKind = "group_header"
	RowKindDetailed    RowKind = "detailed"
	RowKindSummary     RowKind = "summary"
)

// Row is one line of the sheet. It is one of *GroupHeaderRow, *DetailedRow or *SummaryRow
// and encodes to a flat fieldname → value object.
type Row interface {
	Kind() RowKind
	Values() map[string]interface{}
}

// GroupHeaderRow opens a partition when the sheet is grouped, e.g. {"branch": "Jakarta"}.
type GroupHeaderRow struct {
	Field string
	Value string
}

func (r *GroupHeaderRow) Kind() RowKind { return RowKindGroupHeader }

func (r *GroupHeaderRow) Values() map[string]interface{} {
	return map[string]interface{}{r.Field: r.Value}
}

func (r *GroupHeaderRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// DetailedRow is one shift of one employee; Cells[i] is day i+1.
// Only the first row of an employee carries EmployeeID and EmployeeName.
type DetailedRow struct {
	EmployeeID   string
	EmployeeName string
	Shift        string
	Cells        []Cell
}

func (r *DetailedRow) Kind() RowKind { return RowKindDetailed }

func (r *DetailedRow) Values() map[string]interface{} {
	v := make(map[string]interface{}, len(r.Cells)+3)
	if r.EmployeeID != "" {
		v["employee"] = r.EmployeeID
		v["employee_name"] = r.EmployeeName
	}
	v["shift"] = r.Shift
	for i, c := range r.Cells {
		v[strconv.Itoa(i+1)] = c.HTML()
	}
	return v
}

func (r *DetailedRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// Cell returns the cell of day (1-based).
func (r *DetailedRow) Cell(day int) Cell {
	if day < 1 || day > len(r.Cells) {
		return Cell{}
	}
	return r.Cells[day-1]
}

// SummaryRow holds one employee's month totals.
type SummaryRow struct {
	EmployeeID       string
	EmployeeName     string
	TotalPresent     float64
	TotalLeaves      float64
	TotalAbsent      float64
	TotalHolidays    float64
	UnmarkedDays     float64
	LeaveDays        map[string]float64 // keyed by leave type fieldname
	TotalLateEntries float64
	TotalEarlyExits  float64
}

func (r *SummaryRow) Kind() RowKind { return RowKindSummary }

func (r *SummaryRow) Values() map[string]interface{} {
	v := map[string]interface{}{
		"employee":           r.EmployeeID,
		"employee_name":      r.EmployeeName,
		"total_present":      r.TotalPresent,
		"total_leaves":       r.TotalLeaves,
		"total_absent":       r.TotalAbsent,
		"total_holidays":     r.TotalHolidays,
		"unmarked_days":      r.UnmarkedDays,
		"total_late_entries": r.TotalLateEntries,
		"total_early_exits":  r.TotalEarlyExits,
	}
	for field, days := range r.LeaveDays {
		v[field] = days
	}
	return v
}

func (r *SummaryRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// ClassifiedDays is the number of days the row accounts for.
func (r *SummaryRow) ClassifiedDays() float64 {
	return r.TotalPresent + r.TotalLeaves + r.TotalAbsent + r.TotalHolidays + r.UnmarkedDays
}
