package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_id, name, email, phone, department, designation,
	profile_photo_url, password_hash, created_at, updated_at`

func scanEmployee(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Email, &emp.Phone, &emp.Department, &emp.Designation,
		&emp.ProfilePhotoURL, &emp.PasswordHash, &emp.CreatedAt, &emp.UpdatedAt,
	)
}

// Create implements employee.Repository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.ID = uuid.Must(uuid.NewV7()).String()

	query := `
		INSERT INTO employees (
			id, employee_id, name, email, phone, department, designation,
			profile_photo_url, password_hash
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.EmployeeID,
		emp.Name,
		emp.Email,
		emp.Phone,
		emp.Department,
		emp.Designation,
		emp.ProfilePhotoURL,
		emp.PasswordHash,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return employee.Employee{}, employee.ErrEmailExists
			}
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getByField(ctx, "id", id)
}

// GetByEmployeeID implements employee.Repository.
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	return r.getByField(ctx, "employee_id", employeeID)
}

// GetByEmail implements employee.Repository.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return r.getByField(ctx, "email", email)
}

func (r *employeeRepository) getByField(ctx context.Context, field, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + field + ` = $1`

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, value), &emp); err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by %s: %w", field, err)
	}

	return emp, nil
}

// ResolveID implements employee.Repository. The submitted value is an
// employee ID when one matches, otherwise a display name. Names are not
// guaranteed unique; a name shared by two employees is rejected rather
// than silently picking one.
func (r *employeeRepository) ResolveID(ctx context.Context, identifierOrName string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx,
		`SELECT employee_id FROM employees WHERE employee_id = $1`,
		identifierOrName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return "", fmt.Errorf("failed to resolve employee id: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT employee_id FROM employees WHERE name = $1 LIMIT 2`,
		identifierOrName,
	)
	if err != nil {
		return "", fmt.Errorf("failed to resolve employee name: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var matched string
		if err := rows.Scan(&matched); err != nil {
			return "", fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, matched)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to resolve employee name: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", employee.ErrEmployeeNotFound
	case 1:
		return ids[0], nil
	default:
		return "", employee.ErrAmbiguousName
	}
}

// ListEmployeeIDs implements employee.Repository.
func (r *employeeRepository) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Designation != nil && *filter.Designation != "" {
		baseWhere += fmt.Sprintf(" AND designation = $%d", argIdx)
		args = append(args, *filter.Designation)
		argIdx++
	}
	if filter.NameSubstring != nil && *filter.NameSubstring != "" {
		baseWhere += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.NameSubstring+"%")
		argIdx++
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + baseWhere + ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.Repository. Only non-nil/non-empty fields are
// written; everything else keeps its stored value.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if emp.Name != "" {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, emp.Name)
		argIdx++
	}
	if emp.Email != "" {
		updates = append(updates, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, emp.Email)
		argIdx++
	}
	if emp.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, emp.Phone)
		argIdx++
	}
	if emp.Department != nil {
		updates = append(updates, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, emp.Department)
		argIdx++
	}
	if emp.Designation != nil {
		updates = append(updates, fmt.Sprintf("designation = $%d", argIdx))
		args = append(args, emp.Designation)
		argIdx++
	}
	if emp.ProfilePhotoURL != nil {
		updates = append(updates, fmt.Sprintf("profile_photo_url = $%d", argIdx))
		args = append(args, emp.ProfilePhotoURL)
		argIdx++
	}
	if emp.PasswordHash != nil {
		updates = append(updates, fmt.Sprintf("password_hash = $%d", argIdx))
		args = append(args, emp.PasswordHash)
		argIdx++
	}

	if len(updates) == 0 {
		return employee.ErrNothingToUpdate
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, emp.EmployeeID)

	query := "UPDATE employees SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE employee_id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.Repository.
func (r *employeeRepository) Delete(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
