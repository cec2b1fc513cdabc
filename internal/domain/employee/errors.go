package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmployeeIDExists   = errors.New("employee id already registered")
	ErrAmbiguousName      = errors.New("display name matches more than one employee")
	ErrNothingToUpdate    = errors.New("no fields to update")
	ErrOldPasswordInvalid = errors.New("old password is incorrect")
)
