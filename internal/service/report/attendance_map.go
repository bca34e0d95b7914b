package report

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
)

// DayAttendance is what an employee shift shows on one day.
type DayAttendance struct {
	Status    attendance.Status
	InTime    *time.Time
	OutTime   *time.Time
	LeaveType string
}

// ShiftAttendance holds the days of one shift; Name is "" for attendance without a shift.
type ShiftAttendance struct {
	Name string
	Days map[int]DayAttendance
}

type employeeAttendance struct {
	shifts []*ShiftAttendance
	byName map[string]*ShiftAttendance
}

func (e *employeeAttendance) shift(name string) *ShiftAttendance {
	if s, ok := e.byName[name]; ok {
		return s
	}
	s := &ShiftAttendance{Name: name, Days: make(map[int]DayAttendance)}
	e.shifts = append(e.shifts, s)
	e.byName[name] = s
	return s
}

// AttendanceMap buckets a month of attendance by employee, shift and day.
// Employees and shifts keep the order they were first seen in.
type AttendanceMap struct {
	order     []string
	employees map[string]*employeeAttendance
}

type stagedLeave struct {
	day       int
	leaveType string
}

// BuildAttendanceMap buckets records ordered by employee then date.
// Leave covers the whole day, so a leave record is written into every shift the
// employee has; an employee with nothing but leave gets a single unnamed shift.
func BuildAttendanceMap(records []attendance.Record) *AttendanceMap {
	m := &AttendanceMap{employees: make(map[string]*employeeAttendance)}
	leaves := make(map[string][]stagedLeave)
	var leaveOrder []string

	for _, r := range records {
		if r.Status == attendance.StatusOnLeave {
			if _, ok := leaves[r.EmployeeID]; !ok {
				leaveOrder = append(leaveOrder, r.EmployeeID)
			}
			leaves[r.EmployeeID] = append(leaves[r.EmployeeID], stagedLeave{day: r.DayOfMonth, leaveType: deref(r.LeaveType)})
			continue
		}

		entry := DayAttendance{Status: r.Status}
		if r.Status == attendance.StatusPresent || r.Status == attendance.StatusHalfDay {
			entry.InTime = r.InTime
			entry.OutTime = r.OutTime
		}
		m.employee(r.EmployeeID).shift(deref(r.Shift)).Days[r.DayOfMonth] = entry
	}

	for _, employeeID := range leaveOrder {
		emp := m.employee(employeeID)
		if len(emp.shifts) == 0 {
			emp.shift("")
		}
		for _, l := range leaves[employeeID] {
			for _, s := range emp.shifts {
				s.Days[l.day] = DayAttendance{Status: attendance.StatusOnLeave, LeaveType: l.leaveType}
			}
		}
	}

	return m
}

func (m *AttendanceMap) employee(id string) *employeeAttendance {
	if e, ok := m.employees[id]; ok {
		return e
	}
	e := &employeeAttendance{byName: make(map[string]*ShiftAttendance)}
	m.order = append(m.order, id)
	m.employees[id] = e
	return e
}

// IsEmpty reports whether the month has no attendance at all.
func (m *AttendanceMap) IsEmpty() bool {
	return len(m.order) == 0
}

// Employees returns employee ids in first-seen order.
func (m *AttendanceMap) Employees() []string {
	return m.order
}

// Has reports whether the employee has any attendance in the month.
func (m *AttendanceMap) Has(employeeID string) bool {
	_, ok := m.employees[employeeID]
	return ok
}

// Shifts returns the employee's shifts in first-seen order, nil for unknown employees.
func (m *AttendanceMap) Shifts(employeeID string) []*ShiftAttendance {
	e, ok := m.employees[employeeID]
	if !ok {
		return nil
	}
	return e.shifts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
