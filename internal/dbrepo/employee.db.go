package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Employee Repository ==============================
type EmployeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepo(db *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = `id, employee_id, firstname, lastname, contact_number, email, created_at, updated_at`

// CreateEmployee inserts a new employee
func (r *EmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees
		(employee_id, firstname, lastname, contact_number, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		e.EmployeeID, e.FirstName, e.LastName, e.ContactNumber, e.Email,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "employees_employee_id_key":
				return errors.New("this employee ID is already in use")
			case "employees_email_key":
				return errors.New("this email is already associated with another employee")
			}
		}
		return fmt.Errorf("error creating employee: %w", err)
	}
	return nil
}

// GetEmployee fetches an employee by surrogate ID
func (r *EmployeeRepo) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	e := &models.Employee{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName,
		&e.ContactNumber, &e.Email, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEmployeeByEmployeeID fetches an employee by the business employee id.
// Used by the payslip service to resolve the payee.
func (r *EmployeeRepo) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id=$1`
	e := &models.Employee{}
	err := r.db.QueryRow(ctx, query, employeeID).Scan(
		&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName,
		&e.ContactNumber, &e.Email, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEmployee updates employee contact details. The business
// employee_id of a referenced employee is not editable here.
func (r *EmployeeRepo) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE employees
		SET firstname=$1, lastname=$2, contact_number=$3, email=$4, updated_at=CURRENT_TIMESTAMP
		WHERE id=$5
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		e.FirstName, e.LastName, e.ContactNumber, e.Email, e.ID,
	).Scan(&e.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employees_email_key" {
			return errors.New("this email is already associated with another employee")
		}
		return err
	}
	return nil
}

// DeleteEmployee removes an employee by ID
func (r *EmployeeRepo) DeleteEmployee(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM employees WHERE id=$1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PaginatedEmployeeList returns a page of employees with an optional
// ILIKE search over employee_id, name and email.
func (r *EmployeeRepo) PaginatedEmployeeList(ctx context.Context, page, limit int, search string) ([]*models.Employee, int, error) {
	offset := (page - 1) * limit

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM employees WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if search != "" {
		cond := fmt.Sprintf(` AND (employee_id ILIKE '%%' || $%d || '%%'
			OR firstname ILIKE '%%' || $%d || '%%'
			OR lastname ILIKE '%%' || $%d || '%%'
			OR email ILIKE '%%' || $%d || '%%')`, argIdx, argIdx, argIdx, argIdx)
		query += cond
		countQuery += cond
		args = append(args, search)
		countArgs = append(countArgs, search)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := []*models.Employee{}
	for rows.Next() {
		var e models.Employee
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName,
			&e.ContactNumber, &e.Email, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, &e)
	}

	return employees, total, nil
}
