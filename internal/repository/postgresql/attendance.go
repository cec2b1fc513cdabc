package postgresql

import (
	"context"
	"fmt"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// storageErr tags connectivity and transaction failures so callers can
// distinguish them from domain outcomes.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", attendance.ErrStorageUnavailable, op, err)
}

// RecordCheckIn implements attendance.Repository.
//
// A single conditional write resolves both taps of the day: the insert
// branch creates the record with the classified status, the conflict branch
// only moves check_out_time. Racing calls for the same (employee_id, date)
// serialize on the unique key inside the database, so exactly one caller
// ever takes the insert branch.
func (a *attendanceRepository) RecordCheckIn(ctx context.Context, employeeID, date, timeOfDay string, status attendance.Status) (attendance.Action, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, employee_id, date, check_in_time, check_out_time, status)
		VALUES ($1, $2, $3, $4, NULL, $5)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET check_out_time = EXCLUDED.check_in_time, updated_at = now()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		employeeID,
		date,
		timeOfDay,
		string(status),
	).Scan(&inserted)
	if err != nil {
		return "", storageErr("record check-in", err)
	}

	if inserted {
		return attendance.ActionCheckedIn, nil
	}
	return attendance.ActionCheckedOut, nil
}

// RecordAbsenceIfMissing implements attendance.Repository.
func (a *attendanceRepository) RecordAbsenceIfMissing(ctx context.Context, employeeID, date string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, employee_id, date, check_in_time, check_out_time, status)
		VALUES ($1, $2, $3, NULL, NULL, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		employeeID,
		date,
		string(attendance.StatusAbsent),
	)
	if err != nil {
		return false, storageErr("record absence", err)
	}

	// RowsAffected 0 means a record already existed; the write is dropped
	// by design and the caller only logs it.
	return tag.RowsAffected() == 1, nil
}

// DeleteByEmployee implements attendance.Repository. Zero rows is fine, an
// employee may have no history yet.
func (a *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, a.db)

	_, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE employee_id = $1`, employeeID)
	if err != nil {
		return storageErr("delete records by employee", err)
	}

	return nil
}

const recordColumns = `
	a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time, a.status,
	a.created_at, a.updated_at`

const joinedColumns = recordColumns + `,
	e.name AS employee_name,
	e.department,
	e.designation`

func scanRecord(row pgx.Row, rec *attendance.Record) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

// GetByEmployee implements attendance.Repository.
func (a *attendanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, storageErr("query records by employee", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := scanRecord(rows, &rec); err != nil {
			return nil, storageErr("scan record", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	var rec attendance.Record
	err := scanRecord(q.QueryRow(ctx, query, employeeID, date), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for that day
		}
		return nil, storageErr("query record by employee and date", err)
	}

	return &rec, nil
}

// ListForDate implements attendance.Repository.
func (a *attendanceRepository) ListForDate(ctx context.Context, date string, filter attendance.DateFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.date = $1"
	args := []interface{}{date}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Designation != nil && *filter.Designation != "" {
		baseWhere += fmt.Sprintf(" AND e.designation = $%d", argIdx)
		args = append(args, *filter.Designation)
		argIdx++
	}
	if filter.NameSubstring != nil && *filter.NameSubstring != "" {
		baseWhere += fmt.Sprintf(" AND e.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.NameSubstring+"%")
		argIdx++
	}

	query := `
		SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY e.name ASC
	`

	return a.queryJoined(ctx, q, query, args...)
}

// ListAllJoined implements attendance.Repository.
func (a *attendanceRepository) ListAllJoined(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		ORDER BY a.date DESC, e.name ASC
	`

	return a.queryJoined(ctx, q, query)
}

// ListByDateRange implements attendance.Repository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date ASC, e.name ASC
	`

	return a.queryJoined(ctx, q, query, startDate, endDate)
}

func (a *attendanceRepository) queryJoined(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query joined records", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.Department, &rec.Designation,
		)
		if err != nil {
			return nil, storageErr("scan joined record", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
