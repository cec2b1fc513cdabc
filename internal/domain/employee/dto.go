package employee

import (
	"github.com/facemark/attendance-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	EmployeeID      string  `json:"employee_id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Department      *string `json:"department,omitempty"`
	Designation     *string `json:"designation,omitempty"`
	ProfilePhotoURL *string `json:"profile_photo,omitempty"`
}

type ListFilter struct {
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	NameSubstring *string `json:"name,omitempty"`
}

// UpdateProfileRequest is the self-service partial update. A password
// change requires the old password alongside the new one.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	OldPassword *string `json:"old_password,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}

	if (r.OldPassword == nil) != (r.NewPassword == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "old_password and new_password must be provided together",
		})
	}
	if r.NewPassword != nil && len(*r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest is the admin-side partial update of any roster row.
type UpdateEmployeeRequest struct {
	EmployeeID  string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not valid",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
