package report

import (
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
)

// buildChart totals absent, present and leave per day across the attendance map.
// Leave spans every shift of an employee, so it is counted once per employee day.
func buildChart(m *AttendanceMap, year, month int) *report.ChartData {
	columns := dayColumns(year, month)
	labels := make([]string, len(columns))
	absent := make([]float64, len(columns))
	present := make([]float64, len(columns))
	leave := make([]float64, len(columns))

	for i, col := range columns {
		labels[i] = col.Label
		day := i + 1

		for _, employeeID := range m.Employees() {
			for _, shift := range m.Shifts(employeeID) {
				entry, ok := shift.Days[day]
				if !ok {
					continue
				}
				if entry.Status == attendance.StatusOnLeave {
					leave[i]++
					break
				}
				switch entry.Status {
				case attendance.StatusAbsent:
					absent[i]++
				case attendance.StatusPresent, attendance.StatusWorkFromHome:
					present[i]++
				case attendance.StatusHalfDay:
					present[i] += 0.5
					leave[i] += 0.5
				}
			}
		}
	}

	return &report.ChartData{
		Data: report.ChartSeries{
			Labels: labels,
			Datasets: []report.ChartDataset{
				{Name: "Absent", Values: absent},
				{Name: "Present", Values: present},
				{Name: "Leave", Values: leave},
			},
		},
		Type:   "line",
		Colors: []string{"red", "green", "blue"},
	}
}
