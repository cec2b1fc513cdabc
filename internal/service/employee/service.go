package employee

import (
	"context"
	"fmt"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/domain/auth"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/database"
	"github.com/facemark/attendance-backend-go/internal/pkg/storage"
	"github.com/facemark/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db          *database.DB
	directory   employee.Repository
	store       attendance.Repository
	fileStorage storage.FileStorage
}

func NewEmployeeService(
	db *database.DB,
	directory employee.Repository,
	store attendance.Repository,
	fileStorage storage.FileStorage,
) employee.Service {
	return &EmployeeServiceImpl{
		db:          db,
		directory:   directory,
		store:       store,
		fileStorage: fileStorage,
	}
}

// GetProfile implements employee.Service.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.mapToResponse(emp), nil
}

// UpdateProfile implements employee.Service. A password change verifies
// the old password before anything is written.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.currentEmployee(ctx)
	if err != nil {
		return err
	}

	update := employee.Employee{EmployeeID: current.EmployeeID}
	if req.Name != nil {
		update.Name = *req.Name
	}
	update.Phone = req.Phone

	if req.NewPassword != nil {
		if current.PasswordHash == nil {
			return employee.ErrOldPasswordInvalid
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*current.PasswordHash), []byte(*req.OldPassword)); err != nil {
			return employee.ErrOldPasswordInvalid
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		update.PasswordHash = &hashStr
	}

	return s.directory.Update(ctx, update)
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.directory.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, s.mapToResponse(emp))
	}

	return responses, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.mapToResponse(emp), nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	update := employee.Employee{EmployeeID: req.EmployeeID}
	if req.Name != nil {
		update.Name = *req.Name
	}
	if req.Email != nil {
		update.Email = *req.Email
	}
	update.Phone = req.Phone
	update.Department = req.Department
	update.Designation = req.Designation

	if err := s.directory.Update(ctx, update); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, req.EmployeeID)
}

// Delete implements employee.Service. The attendance history and the
// roster row go in one transaction; the stored profile photo goes after.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, employeeID string) error {
	emp, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.store.DeleteByEmployee(txCtx, employeeID); err != nil {
			return err
		}
		return s.directory.Delete(txCtx, employeeID)
	})
	if err != nil {
		return err
	}

	if emp.ProfilePhotoURL != nil {
		_ = s.fileStorage.Delete(ctx, *emp.ProfilePhotoURL)
	}

	return nil
}

func (s *EmployeeServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return employee.Employee{}, auth.ErrInvalidToken
	}

	return s.directory.GetByEmail(ctx, email)
}

func (s *EmployeeServiceImpl) mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Email:       emp.Email,
		Phone:       emp.Phone,
		Department:  emp.Department,
		Designation: emp.Designation,
	}
	if emp.ProfilePhotoURL != nil {
		url := s.fileStorage.GetURL(*emp.ProfilePhotoURL)
		resp.ProfilePhotoURL = &url
	}
	return resp
}
