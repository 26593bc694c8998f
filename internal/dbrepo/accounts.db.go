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

// ============================== Login Account Repository ==============================
type AccountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepo(db *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{db: db}
}

// CreateAccount inserts a new login account. Password must already be
// hashed by the caller.
func (r *AccountRepo) CreateAccount(ctx context.Context, a *models.Account) error {
	query := `
		INSERT INTO employee_accounts
		(employee_id, account_email, account_password, account_type, account_status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING account_id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		a.EmployeeID, a.AccountEmail, a.Password, a.AccountType, a.AccountStatus,
	).Scan(&a.AccountID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employee_accounts_account_email_key" {
			return errors.New("this email is already associated with another account")
		}
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetAccount fetches a login account by ID
func (r *AccountRepo) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	query := `
		SELECT account_id, employee_id, account_email, account_type, account_status, created_at, updated_at
		FROM employee_accounts
		WHERE account_id=$1`
	a := &models.Account{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.AccountID, &a.EmployeeID, &a.AccountEmail, &a.AccountType, &a.AccountStatus,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAccount updates a login account. An empty Password leaves the
// stored hash untouched.
func (r *AccountRepo) UpdateAccount(ctx context.Context, a *models.Account) error {
	query := `
		UPDATE employee_accounts
		SET employee_id=$1, account_email=$2, account_type=$3, account_status=$4,
		    account_password = COALESCE(NULLIF($5,''), account_password),
		    updated_at=CURRENT_TIMESTAMP
		WHERE account_id=$6
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		a.EmployeeID, a.AccountEmail, a.AccountType, a.AccountStatus, a.Password, a.AccountID,
	).Scan(&a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employee_accounts_account_email_key" {
			return errors.New("this email is already associated with another account")
		}
		return err
	}
	return nil
}

// DeleteAccount removes a login account by ID
func (r *AccountRepo) DeleteAccount(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, "DELETE FROM employee_accounts WHERE account_id=$1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PaginatedAccountList returns a page of login accounts joined with the
// owning employee's name, with optional ILIKE search and type filter.
func (r *AccountRepo) PaginatedAccountList(ctx context.Context, page, limit int, search, accountType string) ([]*models.Account, int, error) {
	offset := (page - 1) * limit

	query := `
		SELECT a.account_id, a.employee_id, a.account_email, a.account_type, a.account_status,
		       a.created_at, a.updated_at, e.firstname, e.lastname
		FROM employee_accounts a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE 1=1`
	countQuery := `
		SELECT COUNT(*)
		FROM employee_accounts a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE 1=1`

	args := []interface{}{}
	countArgs := []interface{}{}
	argIdx := 1

	if search != "" {
		cond := fmt.Sprintf(` AND (a.employee_id ILIKE '%%' || $%d || '%%'
			OR a.account_email ILIKE '%%' || $%d || '%%'
			OR e.firstname ILIKE '%%' || $%d || '%%'
			OR e.lastname ILIKE '%%' || $%d || '%%')`,
			argIdx, argIdx, argIdx, argIdx)
		query += cond
		countQuery += cond
		args = append(args, search)
		countArgs = append(countArgs, search)
		argIdx++
	}

	if accountType != "" {
		cond := fmt.Sprintf(" AND a.account_type = $%d", argIdx)
		query += cond
		countQuery += cond
		args = append(args, accountType)
		countArgs = append(countArgs, accountType)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY a.account_id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
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

	accounts := []*models.Account{}
	for rows.Next() {
		var a models.Account
		err := rows.Scan(
			&a.AccountID, &a.EmployeeID, &a.AccountEmail, &a.AccountType, &a.AccountStatus,
			&a.CreatedAt, &a.UpdatedAt, &a.FirstName, &a.LastName,
		)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, &a)
	}

	return accounts, total, nil
}
