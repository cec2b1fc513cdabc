package employee

import (
	"context"
)

// Repository is the directory side of the system: the authoritative roster
// the sweep iterates over and check-in identifiers resolve against.
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// ResolveID maps an employee ID or a display name to the canonical
	// employee ID. Returns ErrEmployeeNotFound when neither matches.
	ResolveID(ctx context.Context, identifierOrName string) (string, error)

	// ListEmployeeIDs returns the full roster snapshot for the sweep.
	ListEmployeeIDs(ctx context.Context) ([]string, error)

	List(ctx context.Context, filter ListFilter) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error

	Delete(ctx context.Context, employeeID string) error
}
