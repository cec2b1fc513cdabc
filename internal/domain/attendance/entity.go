package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

// Action reports which branch of the conditional write applied: the first
// call of the day creates the record (check-in), every later call only sets
// the check-out time.
type Action string

const (
	ActionCheckedIn  Action = "check-in"
	ActionCheckedOut Action = "check-out"
)

// Record is one employee's attendance for one civil date. Date is an ISO
// string (2006-01-02) and the clock fields are times of day (15:04:05) in
// the configured timezone. Status is assigned once when the record is
// created and never changes afterwards.
type Record struct {
	ID           string
	EmployeeID   string
	Date         string
	CheckInTime  *string
	CheckOutTime *string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined roster attributes, populated by read queries only
	EmployeeName *string
	Department   *string
	Designation  *string
}
