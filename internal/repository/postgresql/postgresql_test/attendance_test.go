package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/database"
	"github.com/facemark/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// testDatabase connects once per run. Tests are skipped when
// TEST_DATABASE_URL is not set.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})

	return testDB
}

func cleanupTestData(t *testing.T, db *database.DB) {
	ctx := context.Background()

	_, err := db.Exec(ctx, "TRUNCATE TABLE attendance_records CASCADE")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE employees CASCADE")
	require.NoError(t, err)
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, employeeID, name string) {
	t.Helper()

	_, err := db.Exec(ctx, `
		INSERT INTO employees (id, employee_id, name, email, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
	`, employeeID, name, employeeID+"@example.com")
	require.NoError(t, err)
}

// ===== ATTENDANCE REPOSITORY TESTS =====

func TestAttendanceRepository_RecordCheckIn_FirstTapInserts(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewAttendanceRepository(db)

	action, err := repo.RecordCheckIn(ctx, "E1", "2024-03-01", "09:10:00", attendance.StatusPresent)

	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckedIn, action)

	rec, err := repo.GetByEmployeeAndDate(ctx, "E1", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "09:10:00", *rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestAttendanceRepository_RecordCheckIn_SecondTapUpdatesCheckOut(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.RecordCheckIn(ctx, "E1", "2024-03-01", "11:00:00", attendance.StatusLate)
	require.NoError(t, err)

	action, err := repo.RecordCheckIn(ctx, "E1", "2024-03-01", "17:00:00", attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckedOut, action)

	rec, err := repo.GetByEmployeeAndDate(ctx, "E1", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "11:00:00", *rec.CheckInTime)
	assert.Equal(t, "17:00:00", *rec.CheckOutTime)
	// First write wins for the day's status.
	assert.Equal(t, attendance.StatusLate, rec.Status)
}

func TestAttendanceRepository_RecordCheckIn_RaceYieldsSingleRecord(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewAttendanceRepository(db)

	const n = 20
	var wg sync.WaitGroup
	actions := make([]attendance.Action, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			action, err := repo.RecordCheckIn(ctx, "E1", "2024-03-01", "09:00:00", attendance.StatusPresent)
			require.NoError(t, err)
			actions[i] = action
		}(i)
	}
	wg.Wait()

	checkIns := 0
	for _, a := range actions {
		if a == attendance.ActionCheckedIn {
			checkIns++
		}
	}
	assert.Equal(t, 1, checkIns)

	records, err := repo.GetByEmployee(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_RecordAbsenceIfMissing(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	createTestEmployee(t, ctx, db, "E2", "Vikram Shah")
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.RecordCheckIn(ctx, "E1", "2024-03-01", "09:00:00", attendance.StatusPresent)
	require.NoError(t, err)

	created, err := repo.RecordAbsenceIfMissing(ctx, "E1", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, created, "existing record must not be clobbered")

	created, err = repo.RecordAbsenceIfMissing(ctx, "E2", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, created)

	rec, err := repo.GetByEmployeeAndDate(ctx, "E2", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)

	// Second sweep over the same day is a no-op.
	created, err = repo.RecordAbsenceIfMissing(ctx, "E2", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAttendanceRepository_GetByEmployeeAndDate_NoRecord(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	rec, err := repo.GetByEmployeeAndDate(ctx, "E1", "2024-03-01")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAttendanceRepository_ListForDate_Filters(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO employees (id, employee_id, name, email, department, created_at, updated_at)
		VALUES
			(gen_random_uuid(), 'E1', 'Asha Rao', 'e1@example.com', 'Engineering', NOW(), NOW()),
			(gen_random_uuid(), 'E2', 'Vikram Shah', 'e2@example.com', 'Sales', NOW(), NOW())
	`)
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(db)
	_, err = repo.RecordCheckIn(ctx, "E1", "2024-03-01", "09:00:00", attendance.StatusPresent)
	require.NoError(t, err)
	_, err = repo.RecordCheckIn(ctx, "E2", "2024-03-01", "11:00:00", attendance.StatusLate)
	require.NoError(t, err)
	_, err = repo.RecordCheckIn(ctx, "E1", "2024-03-02", "09:00:00", attendance.StatusPresent)
	require.NoError(t, err)

	records, err := repo.ListForDate(ctx, "2024-03-01", attendance.DateFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	dept := "Engineering"
	records, err = repo.ListForDate(ctx, "2024-03-01", attendance.DateFilter{Department: &dept})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E1", records[0].EmployeeID)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Asha Rao", *records[0].EmployeeName)

	name := "vikram"
	records, err = repo.ListForDate(ctx, "2024-03-01", attendance.DateFilter{NameSubstring: &name})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E2", records[0].EmployeeID)
}

func TestAttendanceRepository_ListByDateRange(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewAttendanceRepository(db)

	for _, date := range []string{"2024-02-28", "2024-03-01", "2024-03-05"} {
		_, err := repo.RecordCheckIn(ctx, "E1", date, "09:00:00", attendance.StatusPresent)
		require.NoError(t, err)
	}

	records, err := repo.ListByDateRange(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01", records[0].Date)
	assert.Equal(t, "2024-03-05", records[1].Date)
}

// ===== EMPLOYEE REPOSITORY TESTS =====

func TestEmployeeRepository_Create_DuplicateEmail(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	_, err := repo.Create(ctx, employee.Employee{
		EmployeeID: "E1",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, employee.Employee{
		EmployeeID: "E2",
		Name:       "Other Asha",
		Email:      "asha@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = repo.Create(ctx, employee.Employee{
		EmployeeID: "E1",
		Name:       "Same ID",
		Email:      "other@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
}

func TestEmployeeRepository_ResolveID(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	createTestEmployee(t, ctx, db, "E2", "Vikram Shah")
	createTestEmployee(t, ctx, db, "E3", "Vikram Shah")
	repo := postgresql.NewEmployeeRepository(db)

	id, err := repo.ResolveID(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "E1", id)

	id, err = repo.ResolveID(ctx, "Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, "E1", id)

	_, err = repo.ResolveID(ctx, "Vikram Shah")
	assert.ErrorIs(t, err, employee.ErrAmbiguousName)

	_, err = repo.ResolveID(ctx, "Nobody")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_Update_Partial(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewEmployeeRepository(db)

	phone := "+91-9000000000"
	err := repo.Update(ctx, employee.Employee{EmployeeID: "E1", Phone: &phone})
	require.NoError(t, err)

	emp, err := repo.GetByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", emp.Name, "unset fields stay untouched")
	require.NotNil(t, emp.Phone)
	assert.Equal(t, phone, *emp.Phone)

	err = repo.Update(ctx, employee.Employee{EmployeeID: "E1"})
	assert.ErrorIs(t, err, employee.ErrNothingToUpdate)

	err = repo.Update(ctx, employee.Employee{EmployeeID: "missing", Phone: &phone})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewEmployeeRepository(db)

	require.NoError(t, repo.Delete(ctx, "E1"))
	assert.ErrorIs(t, repo.Delete(ctx, "E1"), employee.ErrEmployeeNotFound)

	_, err := repo.GetByEmployeeID(ctx, "E1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ListEmployeeIDs(t *testing.T) {
	db := testDatabase(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	createTestEmployee(t, ctx, db, "E2", "Vikram Shah")
	createTestEmployee(t, ctx, db, "E1", "Asha Rao")
	repo := postgresql.NewEmployeeRepository(db)

	ids, err := repo.ListEmployeeIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"E1", "E2"}, ids)
}
