package holiday

import "github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"

// Holiday is one dated entry of a holiday list within the reported month.
type Holiday struct {
	HolidayListID string
	DayOfMonth    int
	WeeklyOff     bool
}

// Calendar holds the holidays of one holiday list for a single month.
type Calendar []Holiday

// Lists maps holiday list id to its calendar for the month.
type Lists map[string]Calendar

// StatusOn classifies day through the calendar: Weekly Off wins over Holiday,
// and a day without an entry is unmarked ("").
func (c Calendar) StatusOn(day int) attendance.Status {
	var status attendance.Status
	for _, h := range c {
		if h.DayOfMonth != day {
			continue
		}
		if h.WeeklyOff {
			return attendance.StatusWeeklyOff
		}
		status = attendance.StatusHoliday
	}
	return status
}

// For returns the calendar an employee observes: their own list or, failing that,
// the company default.
func (l Lists) For(employeeListID, defaultListID *string) Calendar {
	if employeeListID != nil && *employeeListID != "" {
		return l[*employeeListID]
	}
	if defaultListID != nil {
		return l[*defaultListID]
	}
	return nil
}
