package employee

import (
	"context"
)

type Service interface {
	// Profile endpoints act on the authenticated caller (email claim).
	GetProfile(ctx context.Context) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error

	// Admin-side directory management.
	List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, error)
	Get(ctx context.Context, employeeID string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) error
}
