package employee

import (
	"time"
)

type Designation string

const (
	DesignationAdmin Designation = "admin"
)

// Employee is one row of the roster. EmployeeID is the stable identifier
// the attendance table is keyed on; Name is a display name used only as a
// fallback lookup key for check-in submissions.
type Employee struct {
	ID              string
	EmployeeID      string
	Name            string
	Email           string
	Phone           *string
	Department      *string
	Designation     *string
	ProfilePhotoURL *string
	PasswordHash    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e Employee) IsAdmin() bool {
	return e.Designation != nil && *e.Designation == string(DesignationAdmin)
}
