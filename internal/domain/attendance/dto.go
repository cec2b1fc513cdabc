package attendance

import (
	"github.com/facemark/attendance-backend-go/internal/pkg/validator"
)

// CheckRequest is the single entry point for both taps of the day. The
// identifier is either an employee ID or a display name; the caller never
// says which action it wants.
type CheckRequest struct {
	Identifier string `json:"name"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "employee name or id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckResponse struct {
	Action     Action `json:"action"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     Status `json:"status"`
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       Status  `json:"status"`
	EmployeeName *string `json:"name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Designation  *string `json:"designation,omitempty"`
}

// DateFilter narrows the per-date report by roster attributes. An empty
// Date means "today" in the configured timezone.
type DateFilter struct {
	Date          *string `json:"date,omitempty"`
	EmployeeID    *string `json:"employee_id,omitempty"`
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	NameSubstring *string `json:"name,omitempty"`
}

func (f *DateFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RangeFilter selects records whose date falls in [StartDate, EndDate].
type RangeFilter struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(f.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, valid := validator.IsValidDate(f.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
