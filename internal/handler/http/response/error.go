package response

import (
	"errors"
	"net/http"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/domain/auth"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already registered")
	case errors.Is(err, employee.ErrAmbiguousName):
		Conflict(w, "Name matches more than one employee, use the employee ID")
	case errors.Is(err, employee.ErrNothingToUpdate):
		BadRequest(w, "Nothing to update", nil)
	case errors.Is(err, employee.ErrOldPasswordInvalid):
		Unauthorized(w, "Old password is incorrect")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrStorageUnavailable):
		ServiceUnavailable(w, "Attendance storage is unavailable, try again")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
