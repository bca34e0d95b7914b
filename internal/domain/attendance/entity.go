package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent      Status = "Present"
	StatusAbsent       Status = "Absent"
	StatusHalfDay      Status = "Half Day"
	StatusWorkFromHome Status = "Work From Home"
	StatusOnLeave      Status = "On Leave"
	StatusHoliday      Status = "Holiday"
	StatusWeeklyOff    Status = "Weekly Off"
)

// Statuses lists every status in legend order.
var Statuses = []Status{
	StatusPresent,
	StatusAbsent,
	StatusHalfDay,
	StatusWorkFromHome,
	StatusOnLeave,
	StatusHoliday,
	StatusWeeklyOff,
}

var abbreviations = map[Status]string{
	StatusPresent:      "P",
	StatusAbsent:       "A",
	StatusHalfDay:      "HD",
	StatusWorkFromHome: "WFH",
	StatusOnLeave:      "L",
	StatusHoliday:      "H",
	StatusWeeklyOff:    "WO",
}

// Abbr returns the short code shown in sheet cells, "" for an unmarked day.
func (s Status) Abbr() string {
	return abbreviations[s]
}

func (s Status) IsValid() bool {
	_, ok := abbreviations[s]
	return ok
}

// Record is one submitted attendance row projected for the monthly sheet.
type Record struct {
	EmployeeID string
	DayOfMonth int
	Status     Status
	Shift      *string
	InTime     *time.Time
	OutTime    *time.Time
	LeaveType  *string
}

// TimeLog holds the clock in/out of a single attendance day.
type TimeLog struct {
	InTime  *time.Time
	OutTime *time.Time
}

// Summary aggregates one employee's attendance over a month, one status per day.
type Summary struct {
	TotalPresent  float64
	TotalAbsent   float64
	TotalLeaves   float64
	TotalHalfDays float64
	// Days that have at least one submitted attendance row.
	Days []int
	// Days recorded with a Holiday or Weekly Off status.
	RecordedHolidays int
}

// HasActivity reports whether any present/absent/leave/half-day total is non-zero.
func (s Summary) HasActivity() bool {
	return s.TotalPresent != 0 || s.TotalAbsent != 0 || s.TotalLeaves != 0 || s.TotalHalfDays != 0
}

type EntryExitSummary struct {
	TotalLateEntries int
	TotalEarlyExits  int
}
