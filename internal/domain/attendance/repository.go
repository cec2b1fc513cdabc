package attendance

import (
	"context"
)

// Repository owns the attendance_records table. The two mutating methods
// are the only writers anywhere in the system; both are single conditional
// writes against the (employee_id, date) unique key, so racing callers
// resolve inside the database rather than with a read-then-write.
type Repository interface {
	// RecordCheckIn inserts a fresh record (check-in) or, when one already
	// exists for the key, only overwrites check_out_time (check-out).
	// check_in_time and status are never touched once set.
	RecordCheckIn(ctx context.Context, employeeID, date, timeOfDay string, status Status) (Action, error)

	// RecordAbsenceIfMissing creates an Absent record with both times null,
	// or does nothing if any record already exists. The false return is the
	// expected lost-race outcome, not an error.
	RecordAbsenceIfMissing(ctx context.Context, employeeID, date string) (created bool, err error)

	// DeleteByEmployee removes every record belonging to one employee.
	// Runs inside the roster-delete transaction so the history never
	// outlives the employee.
	DeleteByEmployee(ctx context.Context, employeeID string) error

	// GetByEmployee returns all records for one employee, newest date first.
	GetByEmployee(ctx context.Context, employeeID string) ([]Record, error)

	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Record, error)

	// ListForDate returns records for one date joined with roster
	// attributes, narrowed by the filter.
	ListForDate(ctx context.Context, date string, filter DateFilter) ([]Record, error)

	// ListAllJoined returns every record joined with roster attributes.
	ListAllJoined(ctx context.Context) ([]Record, error)

	// ListByDateRange returns records with StartDate <= date <= EndDate.
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]Record, error)
}
