package employee

// Detail is the read-only employee snapshot a monthly sheet is rendered against.
type Detail struct {
	ID            string
	EmployeeCode  string
	FullName      string
	Designation   *string
	Grade         *string
	Department    *string
	Branch        *string
	CompanyID     string
	HolidayListID *string
}

// GroupBy is an employee attribute report rows can be partitioned by.
type GroupBy string

const (
	GroupByBranch      GroupBy = "Branch"
	GroupByGrade       GroupBy = "Grade"
	GroupByDepartment  GroupBy = "Department"
	GroupByDesignation GroupBy = "Designation"
)

func (g GroupBy) IsValid() bool {
	switch g {
	case GroupByBranch, GroupByGrade, GroupByDepartment, GroupByDesignation:
		return true
	}
	return false
}

// FieldName is the row key used for the group column, e.g. "branch".
func (g GroupBy) FieldName() string {
	switch g {
	case GroupByBranch:
		return "branch"
	case GroupByGrade:
		return "grade"
	case GroupByDepartment:
		return "department"
	case GroupByDesignation:
		return "designation"
	}
	return ""
}

// LinkOptions names the master data the group column links to.
func (g GroupBy) LinkOptions() string {
	if g == GroupByGrade {
		return "Employee Grade"
	}
	return string(g)
}

// GroupValue returns the employee's value for g, "" when unset.
func (d Detail) GroupValue(g GroupBy) string {
	var v *string
	switch g {
	case GroupByBranch:
		v = d.Branch
	case GroupByGrade:
		v = d.Grade
	case GroupByDepartment:
		v = d.Department
	case GroupByDesignation:
		v = d.Designation
	}
	if v == nil {
		return ""
	}
	return *v
}
