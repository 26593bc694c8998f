package dbrepo

import (
	"context"
	"fmt"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Bank Account Repository ==============================
type BankAccountRepo struct {
	db *pgxpool.Pool
}

func NewBankAccountRepo(db *pgxpool.Pool) *BankAccountRepo {
	return &BankAccountRepo{db: db}
}

// CreateBankAccount inserts a new banking record for an employee.
// Duplicate (employee_id, bank_account_number) pairs are not rejected at
// the storage layer; the form is expected to prevent them.
func (r *BankAccountRepo) CreateBankAccount(ctx context.Context, b *models.BankAccount) error {
	query := `
		INSERT INTO employee_banking_details
		(employee_id, preferred_bank, bank_account_number, bank_account_name, created_at, updated_at)
		VALUES ($1,$2,$3,$4,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		b.EmployeeID, b.PreferredBank, b.BankAccountNumber, b.BankAccountName,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetBankAccount fetches one banking record scoped to its owning
// employee. Returns pgx.ErrNoRows when the record exists but belongs to
// a different employee, which the payslip service treats as a
// validation failure.
func (r *BankAccountRepo) GetBankAccount(ctx context.Context, id int, employeeID string) (*models.BankAccount, error) {
	query := `
		SELECT id, employee_id, preferred_bank, bank_account_number, bank_account_name, created_at, updated_at
		FROM employee_banking_details
		WHERE id=$1 AND employee_id=$2`
	b := &models.BankAccount{}
	err := r.db.QueryRow(ctx, query, id, employeeID).Scan(
		&b.ID, &b.EmployeeID, &b.PreferredBank, &b.BankAccountNumber, &b.BankAccountName,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBankAccountsByEmployee lists all banking records of an employee,
// used by the payslip form's bank selector.
func (r *BankAccountRepo) GetBankAccountsByEmployee(ctx context.Context, employeeID string) ([]*models.BankAccount, error) {
	query := `
		SELECT id, employee_id, preferred_bank, bank_account_number, bank_account_name, created_at, updated_at
		FROM employee_banking_details
		WHERE employee_id=$1
		ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*models.BankAccount{}
	for rows.Next() {
		var b models.BankAccount
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.PreferredBank, &b.BankAccountNumber, &b.BankAccountName,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &b)
	}
	return accounts, nil
}

// UpdateBankAccount updates a banking record
func (r *BankAccountRepo) UpdateBankAccount(ctx context.Context, b *models.BankAccount) error {
	query := `
		UPDATE employee_banking_details
		SET preferred_bank=$1, bank_account_number=$2, bank_account_name=$3, updated_at=CURRENT_TIMESTAMP
		WHERE id=$4
		RETURNING updated_at;
	`
	return r.db.QueryRow(ctx, query,
		b.PreferredBank, b.BankAccountNumber, b.BankAccountName, b.ID,
	).Scan(&b.UpdatedAt)
}

// DeleteBankAccount removes a banking record by ID
func (r *BankAccountRepo) DeleteBankAccount(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM employee_banking_details WHERE id=$1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PaginatedBankAccountList returns a page of banking records joined with
// the owning employee's name, with optional ILIKE search.
func (r *BankAccountRepo) PaginatedBankAccountList(ctx context.Context, page, limit int, search, sortField, sortDirection string) ([]*models.BankAccount, int, error) {
	offset := (page - 1) * limit

	allowedFields := map[string]string{
		"id":                  "b.id",
		"employee_id":         "b.employee_id",
		"preferred_bank":      "b.preferred_bank",
		"bank_account_number": "b.bank_account_number",
		"bank_account_name":   "b.bank_account_name",
		"created_at":          "b.created_at",
		"firstname":           "e.firstname",
		"lastname":            "e.lastname",
	}
	orderBy, ok := allowedFields[sortField]
	if !ok {
		orderBy = "b.id"
	}
	if sortDirection != "DESC" {
		sortDirection = "ASC"
	}

	query := `
		SELECT b.id, b.employee_id, b.preferred_bank, b.bank_account_number, b.bank_account_name,
		       b.created_at, b.updated_at, e.firstname, e.lastname
		FROM employee_banking_details b
		JOIN employees e ON e.employee_id = b.employee_id
		WHERE 1=1`
	countQuery := `
		SELECT COUNT(*)
		FROM employee_banking_details b
		JOIN employees e ON e.employee_id = b.employee_id
		WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if search != "" {
		cond := fmt.Sprintf(` AND (b.employee_id ILIKE '%%' || $%d || '%%'
			OR b.preferred_bank ILIKE '%%' || $%d || '%%'
			OR b.bank_account_number ILIKE '%%' || $%d || '%%'
			OR b.bank_account_name ILIKE '%%' || $%d || '%%'
			OR e.firstname ILIKE '%%' || $%d || '%%'
			OR e.lastname ILIKE '%%' || $%d || '%%')`,
			argIdx, argIdx, argIdx, argIdx, argIdx, argIdx)
		query += cond
		countQuery += cond
		args = append(args, search)
		countArgs = append(countArgs, search)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderBy, sortDirection, argIdx, argIdx+1)
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

	accounts := []*models.BankAccount{}
	for rows.Next() {
		var b models.BankAccount
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.PreferredBank, &b.BankAccountNumber, &b.BankAccountName,
			&b.CreatedAt, &b.UpdatedAt, &b.FirstName, &b.LastName,
		)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, &b)
	}

	return accounts, total, nil
}
