package report

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
)

type employeeGroup struct {
	Value     string
	Employees []employee.Detail
}

// groupEmployees partitions employees by their value for g, in ascending value order.
// Employees keep their relative order inside a group; those without a value are left out.
func groupEmployees(employees []employee.Detail, g employee.GroupBy) []employeeGroup {
	sorted := slices.Clone(employees)
	slices.SortStableFunc(sorted, func(a, b employee.Detail) int {
		return strings.Compare(a.GroupValue(g), b.GroupValue(g))
	})

	var groups []employeeGroup
	for _, emp := range sorted {
		value := emp.GroupValue(g)
		if value == "" {
			continue
		}
		if n := len(groups); n > 0 && groups[n-1].Value == value {
			groups[n-1].Employees = append(groups[n-1].Employees, emp)
			continue
		}
		groups = append(groups, employeeGroup{Value: value, Employees: []employee.Detail{emp}})
	}
	return groups
}
