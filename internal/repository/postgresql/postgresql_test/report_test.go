package postgresqltest

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	dbOnce  sync.Once
	dbSetup *TestDatabaseSetup
	dbErr   error
)

func TestMain(m *testing.M) {
	code := m.Run()
	if dbSetup != nil {
		dbSetup.Close(context.Background())
	}
	os.Exit(code)
}

func testDatabase(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	if os.Getenv("TEST_DATABASE_URL") == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	dbOnce.Do(func() {
		ctx := context.Background()
		dbSetup, dbErr = NewTestDatabase(ctx)
		if dbErr == nil {
			dbErr = dbSetup.ApplySchema(ctx, "testdata/schema.sql")
		}
	})
	require.NoError(t, dbErr)
	return dbSetup.DB
}

// newTxRepository runs the repository inside a transaction rolled back after the test
func newTxRepository(t *testing.T) (context.Context, report.ReportRepository, *seeder) {
	t.Helper()
	db := testDatabase(t)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	ctx = postgresql.WithTx(ctx, tx)
	return ctx, postgresql.NewReportRepository(db), &seeder{t: t, ctx: ctx, tx: tx}
}

// ===== FIXTURES =====

type seeder struct {
	t   *testing.T
	ctx context.Context
	tx  pgx.Tx
}

func (s *seeder) exec(query string, args ...interface{}) {
	s.t.Helper()
	_, err := s.tx.Exec(s.ctx, query, args...)
	require.NoError(s.t, err)
}

func (s *seeder) returningID(query string, args ...interface{}) string {
	s.t.Helper()
	var id string
	require.NoError(s.t, s.tx.QueryRow(s.ctx, query, args...).Scan(&id))
	return id
}

func (s *seeder) company(name string) string {
	id := uuid.NewString()
	s.exec(`INSERT INTO companies (id, name) VALUES ($1, $2)`, id, name)
	return id
}

// named inserts into one of the company scoped lookup tables
func (s *seeder) named(table, companyID, name string) string {
	return s.returningID(`INSERT INTO `+table+` (company_id, name) VALUES ($1, $2) RETURNING id`, companyID, name)
}

func (s *seeder) holidayList(companyID *string, name string) string {
	return s.returningID(`INSERT INTO holiday_lists (company_id, name) VALUES ($1, $2) RETURNING id`, companyID, name)
}

func (s *seeder) holiday(listID, date string, weeklyOff bool) {
	s.exec(`INSERT INTO holidays (holiday_list_id, holiday_date, weekly_off) VALUES ($1, $2::date, $3)`, listID, date, weeklyOff)
}

func (s *seeder) shiftTime(companyID, name string) string {
	scheduleID := s.named("work_schedules", companyID, name)
	return s.returningID(`INSERT INTO work_schedule_times (work_schedule_id) VALUES ($1) RETURNING id`, scheduleID)
}

type employeeSeed struct {
	Code          string
	Name          string
	PositionID    *string
	GradeID       *string
	DepartmentID  *string
	BranchID      *string
	HolidayListID *string
	Deleted       bool
}

func (s *seeder) employee(companyID string, e employeeSeed) string {
	var deletedAt *time.Time
	if e.Deleted {
		now := time.Now()
		deletedAt = &now
	}
	return s.returningID(`
		INSERT INTO employees (
			company_id, employee_code, full_name, position_id, grade_id,
			department_id, branch_id, holiday_list_id, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		companyID, e.Code, e.Name, e.PositionID, e.GradeID,
		e.DepartmentID, e.BranchID, e.HolidayListID, deletedAt,
	)
}

type attendanceSeed struct {
	EmployeeID  string
	Date        string
	Status      attendance.Status
	DocStatus   string
	ClockIn     *time.Time
	ClockOut    *time.Time
	ShiftTimeID *string
	LeaveTypeID *string
	LateEntry   bool
	EarlyExit   bool
}

func (s *seeder) attendance(companyID string, a attendanceSeed) {
	if a.DocStatus == "" {
		a.DocStatus = "submitted"
	}
	s.exec(`
		INSERT INTO attendances (
			company_id, employee_id, date, status, doc_status, clock_in, clock_out,
			work_schedule_time_id, leave_type_id, late_entry, early_exit
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11)`,
		companyID, a.EmployeeID, a.Date, string(a.Status), a.DocStatus, a.ClockIn, a.ClockOut,
		a.ShiftTimeID, a.LeaveTypeID, a.LateEntry, a.EarlyExit,
	)
}

func clock(day, hour, minute int) *time.Time {
	t := time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
	return &t
}

// januaryFixture seeds January 2024 for one company plus noise from another company,
// drafts and neighbouring months
type januaryFixture struct {
	CompanyID     string
	OtherCompany  string
	AyuID         string
	BudiID        string
	OwnListID     string
	DefaultListID string
}

func seedJanuary(s *seeder) januaryFixture {
	f := januaryFixture{
		CompanyID:    s.company("PT Maju Jaya"),
		OtherCompany: s.company("PT Lain"),
	}

	branch := s.named("branches", f.CompanyID, "Jakarta")
	grade := s.named("grades", f.CompanyID, "G1")
	position := s.named("positions", f.CompanyID, "Engineer")
	department := s.named("departments", f.CompanyID, "Engineering")

	f.OwnListID = s.holidayList(&f.CompanyID, "Jakarta 2024")
	s.holiday(f.OwnListID, "2024-01-01", false)
	s.holiday(f.OwnListID, "2024-01-06", true)
	s.holiday(f.OwnListID, "2024-02-10", false)

	f.DefaultListID = s.holidayList(nil, "National 2024")
	s.holiday(f.DefaultListID, "2024-01-07", true)
	s.exec(`UPDATE companies SET default_holiday_list_id = $1 WHERE id = $2`, f.DefaultListID, f.CompanyID)

	otherList := s.holidayList(&f.OtherCompany, "Other 2024")
	s.holiday(otherList, "2024-01-08", false)

	casual := s.named("leave_types", f.CompanyID, "Casual Leave")
	annual := s.named("leave_types", f.CompanyID, "Annual Leave")
	s.exec(`INSERT INTO leave_types (company_id, name, deleted_at) VALUES ($1, 'Old Leave', NOW())`, f.CompanyID)
	s.named("leave_types", f.OtherCompany, "Sabbatical")

	morning := s.shiftTime(f.CompanyID, "Morning")
	evening := s.shiftTime(f.CompanyID, "Evening")

	f.AyuID = s.employee(f.CompanyID, employeeSeed{
		Code: "EMP-001", Name: "Ayu Lestari",
		PositionID: &position, GradeID: &grade, DepartmentID: &department, BranchID: &branch,
		HolidayListID: &f.OwnListID,
	})
	f.BudiID = s.employee(f.CompanyID, employeeSeed{Code: "EMP-002", Name: "Budi Santoso"})
	s.employee(f.CompanyID, employeeSeed{Code: "EMP-003", Name: "Citra Dewi", Deleted: true})
	omar := s.employee(f.OtherCompany, employeeSeed{Code: "X-001", Name: "Omar"})

	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-02", Status: attendance.StatusPresent,
		ClockIn: clock(2, 9, 0), ClockOut: clock(2, 18, 0), ShiftTimeID: &morning, LateEntry: true})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-02", Status: attendance.StatusPresent,
		ClockIn: clock(2, 19, 0), ClockOut: clock(2, 22, 0), ShiftTimeID: &evening})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-03", Status: attendance.StatusOnLeave,
		LeaveTypeID: &casual})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-04", Status: attendance.StatusHalfDay,
		ClockIn: clock(4, 9, 0), ClockOut: clock(4, 13, 0), ShiftTimeID: &morning, LeaveTypeID: &casual, EarlyExit: true})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-05", Status: attendance.StatusAbsent,
		ShiftTimeID: &morning})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-06", Status: attendance.StatusWeeklyOff})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-01-08", Status: attendance.StatusPresent,
		DocStatus: "draft"})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.AyuID, Date: "2024-02-01", Status: attendance.StatusPresent})

	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.BudiID, Date: "2024-01-02", Status: attendance.StatusWorkFromHome})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.BudiID, Date: "2024-01-03", Status: attendance.StatusPresent,
		ClockIn: clock(3, 9, 0), ShiftTimeID: &morning})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.BudiID, Date: "2024-01-03", Status: attendance.StatusOnLeave,
		LeaveTypeID: &annual})
	s.attendance(f.CompanyID, attendanceSeed{EmployeeID: f.BudiID, Date: "2023-12-29", Status: attendance.StatusPresent})

	s.attendance(f.OtherCompany, attendanceSeed{EmployeeID: omar, Date: "2024-01-02", Status: attendance.StatusPresent})

	return f
}

func (f januaryFixture) period(employeeID string) report.PeriodFilter {
	return report.PeriodFilter{CompanyID: f.CompanyID, EmployeeID: employeeID, Month: 1, Year: 2024}
}

// ===== ATTENDANCE RECORD TESTS =====

func TestReportRepository_ListAttendanceRecords_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	records, err := repo.ListAttendanceRecords(ctx, f.period(""))
	require.NoError(t, err)
	assert.Len(t, records, 9)
	for _, rec := range records {
		assert.Contains(t, []string{f.AyuID, f.BudiID}, rec.EmployeeID)
	}

	// Grouped by employee
	seen := map[string]bool{}
	for i, rec := range records {
		if i > 0 && records[i-1].EmployeeID != rec.EmployeeID {
			assert.False(t, seen[rec.EmployeeID], "employee rows must be contiguous")
		}
		seen[rec.EmployeeID] = true
	}
}

func TestReportRepository_ListAttendanceRecords_EmployeeFilter(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	records, err := repo.ListAttendanceRecords(ctx, f.period(f.AyuID))
	require.NoError(t, err)
	require.Len(t, records, 6)

	days := make([]int, len(records))
	for i, rec := range records {
		days[i] = rec.DayOfMonth
	}
	assert.Equal(t, []int{2, 2, 3, 4, 5, 6}, days)

	morning := records[0]
	assert.Equal(t, attendance.StatusPresent, morning.Status)
	require.NotNil(t, morning.Shift)
	assert.Equal(t, "Morning", *morning.Shift)
	require.NotNil(t, morning.InTime)
	assert.True(t, clock(2, 9, 0).Equal(*morning.InTime))
	require.NotNil(t, records[1].Shift)
	assert.Equal(t, "Evening", *records[1].Shift)

	leave := records[2]
	assert.Equal(t, attendance.StatusOnLeave, leave.Status)
	assert.Nil(t, leave.Shift)
	require.NotNil(t, leave.LeaveType)
	assert.Equal(t, "Casual Leave", *leave.LeaveType)

	assert.Equal(t, attendance.StatusWeeklyOff, records[5].Status)
	assert.Nil(t, records[5].InTime)
}

func TestReportRepository_ListAttendanceRecords_EmptyMonth(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	filter := f.period("")
	filter.Month = 3
	records, err := repo.ListAttendanceRecords(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReportRepository_GetAttendanceTimeLog_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	log, err := repo.GetAttendanceTimeLog(ctx, f.CompanyID, f.AyuID, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NotNil(t, log.InTime)
	require.NotNil(t, log.OutTime)
	assert.True(t, clock(4, 9, 0).Equal(*log.InTime))
	assert.True(t, clock(4, 13, 0).Equal(*log.OutTime))
}

func TestReportRepository_GetAttendanceTimeLog_NotFound(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	// Absent row without clock times
	log, err := repo.GetAttendanceTimeLog(ctx, f.CompanyID, f.AyuID, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, log)
}

// ===== EMPLOYEE & HOLIDAY TESTS =====

func TestReportRepository_ListEmployeeDetails_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	details, err := repo.ListEmployeeDetails(ctx, f.CompanyID, "")
	require.NoError(t, err)
	require.Len(t, details, 2)

	ayu := details[0]
	assert.Equal(t, f.AyuID, ayu.ID)
	assert.Equal(t, "EMP-001", ayu.EmployeeCode)
	assert.Equal(t, "Ayu Lestari", ayu.FullName)
	assert.Equal(t, f.CompanyID, ayu.CompanyID)
	require.NotNil(t, ayu.Branch)
	assert.Equal(t, "Jakarta", *ayu.Branch)
	require.NotNil(t, ayu.Grade)
	assert.Equal(t, "G1", *ayu.Grade)
	require.NotNil(t, ayu.Designation)
	assert.Equal(t, "Engineer", *ayu.Designation)
	require.NotNil(t, ayu.Department)
	assert.Equal(t, "Engineering", *ayu.Department)
	require.NotNil(t, ayu.HolidayListID)
	assert.Equal(t, f.OwnListID, *ayu.HolidayListID)

	budi := details[1]
	assert.Equal(t, "Budi Santoso", budi.FullName)
	assert.Nil(t, budi.Branch)
	assert.Nil(t, budi.HolidayListID)
}

func TestReportRepository_ListEmployeeDetails_SingleEmployee(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	details, err := repo.ListEmployeeDetails(ctx, f.CompanyID, f.BudiID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, f.BudiID, details[0].ID)
}

func TestReportRepository_GetDefaultHolidayListID(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	listID, err := repo.GetDefaultHolidayListID(ctx, f.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, listID)
	assert.Equal(t, f.DefaultListID, *listID)

	listID, err = repo.GetDefaultHolidayListID(ctx, f.OtherCompany)
	require.NoError(t, err)
	assert.Nil(t, listID)

	listID, err = repo.GetDefaultHolidayListID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, listID)
}

func TestReportRepository_ListHolidays_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	lists, err := repo.ListHolidays(ctx, f.period(""))
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	assert.Equal(t, holiday.Calendar{
		{HolidayListID: f.OwnListID, DayOfMonth: 1, WeeklyOff: false},
		{HolidayListID: f.OwnListID, DayOfMonth: 6, WeeklyOff: true},
	}, lists[f.OwnListID])
	assert.Equal(t, holiday.Calendar{
		{HolidayListID: f.DefaultListID, DayOfMonth: 7, WeeklyOff: true},
	}, lists[f.DefaultListID])
}

func TestReportRepository_ListLeaveTypeNames_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	names, err := repo.ListLeaveTypeNames(ctx, f.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Annual Leave", "Casual Leave"}, names)
}

// ===== SUMMARY TESTS =====

func TestReportRepository_ListAttendanceSummaries_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	summaries, err := repo.ListAttendanceSummaries(ctx, f.period(""))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Two present shifts on the 2nd count as one day
	assert.Equal(t, attendance.Summary{
		TotalPresent:     1,
		TotalAbsent:      1,
		TotalLeaves:      1,
		TotalHalfDays:    0.5,
		Days:             []int{2, 3, 4, 5, 6},
		RecordedHolidays: 1,
	}, summaries[f.AyuID])

	// Leave outranks the present row of the 3rd
	assert.Equal(t, attendance.Summary{
		TotalPresent: 1,
		TotalLeaves:  1,
		Days:         []int{2, 3},
	}, summaries[f.BudiID])
}

func TestReportRepository_ListLeaveSummaries_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	summaries, err := repo.ListLeaveSummaries(ctx, f.period(""))
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]float64{
		f.AyuID:  {"Casual Leave": 1.5},
		f.BudiID: {"Annual Leave": 1},
	}, summaries)
}

func TestReportRepository_ListEntryExitSummaries_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	summaries, err := repo.ListEntryExitSummaries(ctx, f.period(""))
	require.NoError(t, err)
	assert.Equal(t, attendance.EntryExitSummary{TotalLateEntries: 1, TotalEarlyExits: 1}, summaries[f.AyuID])
	assert.Equal(t, attendance.EntryExitSummary{}, summaries[f.BudiID])
}

func TestReportRepository_ListAttendanceYears_Success(t *testing.T) {
	ctx, repo, s := newTxRepository(t)
	f := seedJanuary(s)

	years, err := repo.ListAttendanceYears(ctx, f.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023}, years)

	years, err = repo.ListAttendanceYears(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, years)
}
