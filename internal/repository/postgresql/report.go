package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// periodArgs binds $1..$4 of every period scoped query: company, start, end (exclusive)
// and an optional employee.
func periodArgs(filter report.PeriodFilter) []interface{} {
	return []interface{}{filter.CompanyID, filter.Start(), filter.End(), nullIfEmpty(filter.EmployeeID)}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ListAttendanceRecords retrieves submitted attendance of the month with shift and leave type names
func (r *reportRepositoryImpl) ListAttendanceRecords(ctx context.Context, filter report.PeriodFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.employee_id,
			EXTRACT(DAY FROM a.date)::int AS day_of_month,
			a.status,
			ws.name AS shift,
			a.clock_in,
			a.clock_out,
			lt.name AS leave_type
		FROM attendances a
		LEFT JOIN work_schedule_times wst ON wst.id = a.work_schedule_time_id
		LEFT JOIN work_schedules ws ON ws.id = wst.work_schedule_id
		LEFT JOIN leave_types lt ON lt.id = a.leave_type_id
		WHERE a.doc_status = 'submitted'
			AND a.company_id = $1
			AND a.date >= $2 AND a.date < $3
			AND ($4::uuid IS NULL OR a.employee_id = $4)
		ORDER BY a.employee_id, a.date, a.clock_in NULLS FIRST
	`

	rows, err := q.Query(ctx, query, periodArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var status string
		if err := rows.Scan(
			&rec.EmployeeID,
			&rec.DayOfMonth,
			&status,
			&rec.Shift,
			&rec.InTime,
			&rec.OutTime,
			&rec.LeaveType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance records: %w", err)
	}

	return records, nil
}

// GetAttendanceTimeLog returns the earliest clocked attendance of an employee day
func (r *reportRepositoryImpl) GetAttendanceTimeLog(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT clock_in, clock_out
		FROM attendances
		WHERE company_id = $1
			AND employee_id = $2
			AND date = $3
			AND doc_status = 'submitted'
			AND (clock_in IS NOT NULL OR clock_out IS NOT NULL)
		ORDER BY clock_in NULLS LAST
		LIMIT 1
	`

	var log attendance.TimeLog
	err := q.QueryRow(ctx, query, companyID, employeeID, date).Scan(&log.InTime, &log.OutTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance time log: %w", err)
	}

	return &log, nil
}

func (r *reportRepositoryImpl) ListEmployeeDetails(ctx context.Context, companyID, employeeID string) ([]employee.Detail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.employee_code,
			e.full_name,
			p.name AS designation,
			g.name AS grade,
			d.name AS department,
			b.name AS branch,
			e.company_id,
			e.holiday_list_id
		FROM employees e
		LEFT JOIN positions p ON p.id = e.position_id
		LEFT JOIN grades g ON g.id = e.grade_id
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE e.company_id = $1
			AND e.deleted_at IS NULL
			AND ($2::uuid IS NULL OR e.id = $2)
		ORDER BY e.full_name, e.id
	`

	rows, err := q.Query(ctx, query, companyID, nullIfEmpty(employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to list employee details: %w", err)
	}
	defer rows.Close()

	var details []employee.Detail
	for rows.Next() {
		var d employee.Detail
		if err := rows.Scan(
			&d.ID,
			&d.EmployeeCode,
			&d.FullName,
			&d.Designation,
			&d.Grade,
			&d.Department,
			&d.Branch,
			&d.CompanyID,
			&d.HolidayListID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee details: %w", err)
	}

	return details, nil
}

func (r *reportRepositoryImpl) GetDefaultHolidayListID(ctx context.Context, companyID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var listID *string
	err := q.QueryRow(ctx, `SELECT default_holiday_list_id FROM companies WHERE id = $1`, companyID).Scan(&listID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default holiday list: %w", err)
	}

	return listID, nil
}

// ListHolidays loads the month of every holiday list owned by the company, assigned to
// one of its employees or set as its default
func (r *reportRepositoryImpl) ListHolidays(ctx context.Context, filter report.PeriodFilter) (holiday.Lists, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH company_lists AS (
			SELECT id FROM holiday_lists WHERE company_id = $1
			UNION
			SELECT holiday_list_id FROM employees
			WHERE company_id = $1 AND holiday_list_id IS NOT NULL
			UNION
			SELECT default_holiday_list_id FROM companies
			WHERE id = $1 AND default_holiday_list_id IS NOT NULL
		)
		SELECT
			h.holiday_list_id,
			EXTRACT(DAY FROM h.holiday_date)::int AS day_of_month,
			h.weekly_off
		FROM holidays h
		JOIN company_lists cl ON cl.id = h.holiday_list_id
		WHERE h.holiday_date >= $2 AND h.holiday_date < $3
		ORDER BY h.holiday_list_id, h.holiday_date
	`

	rows, err := q.Query(ctx, query, filter.CompanyID, filter.Start(), filter.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	lists := holiday.Lists{}
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.HolidayListID, &h.DayOfMonth, &h.WeeklyOff); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		lists[h.HolidayListID] = append(lists[h.HolidayListID], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return lists, nil
}

func (r *reportRepositoryImpl) ListLeaveTypeNames(ctx context.Context, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT name
		FROM leave_types
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave types: %w", err)
	}

	return names, nil
}

// ListAttendanceSummaries aggregates one status per employee day. Leave outranks the
// other statuses of a day, matching the leave overlay of the detailed view.
func (r *reportRepositoryImpl) ListAttendanceSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH day_status AS (
			SELECT DISTINCT ON (a.employee_id, a.date)
				a.employee_id,
				a.date,
				a.status
			FROM attendances a
			WHERE a.doc_status = 'submitted'
				AND a.company_id = $1
				AND a.date >= $2 AND a.date < $3
				AND ($4::uuid IS NULL OR a.employee_id = $4)
			ORDER BY a.employee_id, a.date,
				CASE a.status
					WHEN 'On Leave' THEN 0
					WHEN 'Half Day' THEN 1
					WHEN 'Present' THEN 2
					WHEN 'Work From Home' THEN 3
					WHEN 'Absent' THEN 4
					ELSE 5
				END
		)
		SELECT
			employee_id,
			COUNT(*) FILTER (WHERE status IN ('Present', 'Work From Home'))::float8 AS total_present,
			COUNT(*) FILTER (WHERE status = 'Absent')::float8 AS total_absent,
			COUNT(*) FILTER (WHERE status = 'On Leave')::float8 AS total_leaves,
			(COUNT(*) FILTER (WHERE status = 'Half Day') * 0.5)::float8 AS total_half_days,
			array_agg(EXTRACT(DAY FROM date)::int ORDER BY date) AS days,
			COUNT(*) FILTER (WHERE status IN ('Holiday', 'Weekly Off'))::int AS recorded_holidays
		FROM day_status
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, periodArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]attendance.Summary)
	for rows.Next() {
		var employeeID string
		var s attendance.Summary
		if err := rows.Scan(
			&employeeID,
			&s.TotalPresent,
			&s.TotalAbsent,
			&s.TotalLeaves,
			&s.TotalHalfDays,
			&s.Days,
			&s.RecordedHolidays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries[employeeID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance summaries: %w", err)
	}

	return summaries, nil
}

// ListLeaveSummaries returns leave days per employee and leave type name, a half day counting 0.5
func (r *reportRepositoryImpl) ListLeaveSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]map[string]float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.employee_id,
			lt.name,
			SUM(CASE WHEN a.status = 'Half Day' THEN 0.5 ELSE 1 END)::float8 AS leave_days
		FROM attendances a
		JOIN leave_types lt ON lt.id = a.leave_type_id
		WHERE a.doc_status = 'submitted'
			AND a.company_id = $1
			AND a.date >= $2 AND a.date < $3
			AND ($4::uuid IS NULL OR a.employee_id = $4)
			AND a.status IN ('On Leave', 'Half Day')
		GROUP BY a.employee_id, lt.name
	`

	rows, err := q.Query(ctx, query, periodArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]map[string]float64)
	for rows.Next() {
		var employeeID, leaveType string
		var days float64
		if err := rows.Scan(&employeeID, &leaveType, &days); err != nil {
			return nil, fmt.Errorf("failed to scan leave summary: %w", err)
		}
		if summaries[employeeID] == nil {
			summaries[employeeID] = make(map[string]float64)
		}
		summaries[employeeID][leaveType] = days
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave summaries: %w", err)
	}

	return summaries, nil
}

func (r *reportRepositoryImpl) ListEntryExitSummaries(ctx context.Context, filter report.PeriodFilter) (map[string]attendance.EntryExitSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			employee_id,
			COUNT(*) FILTER (WHERE late_entry)::int AS total_late_entries,
			COUNT(*) FILTER (WHERE early_exit)::int AS total_early_exits
		FROM attendances
		WHERE doc_status = 'submitted'
			AND company_id = $1
			AND date >= $2 AND date < $3
			AND ($4::uuid IS NULL OR employee_id = $4)
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, periodArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry exit summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]attendance.EntryExitSummary)
	for rows.Next() {
		var employeeID string
		var s attendance.EntryExitSummary
		if err := rows.Scan(&employeeID, &s.TotalLateEntries, &s.TotalEarlyExits); err != nil {
			return nil, fmt.Errorf("failed to scan entry exit summary: %w", err)
		}
		summaries[employeeID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry exit summaries: %w", err)
	}

	return summaries, nil
}

func (r *reportRepositoryImpl) ListAttendanceYears(ctx context.Context, companyID string) ([]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year
		FROM attendances
		WHERE company_id = $1 AND doc_status = 'submitted'
		ORDER BY year DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan attendance year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance years: %w", err)
	}

	return years, nil
}
